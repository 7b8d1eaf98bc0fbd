package model

import "time"

// Transition records one NPC state change.
type Transition struct {
	NpcID    uint32    `json:"npcId"`
	NpcName  string    `json:"npcName"`
	From     State     `json:"from"`
	To       State     `json:"to"`
	Distance float64   `json:"distance"`
	Tick     uint64    `json:"tick"`
	At       time.Time `json:"at"`
}
