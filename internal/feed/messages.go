package feed

import "github.com/udisondev/chasedemo/internal/model"

const (
	typeFrame   = "frame"
	typeComment = "comment"
)

// Frame wraps a scene snapshot for the wire.
type Frame struct {
	Type string `json:"type"`
	model.Snapshot
}

// Comment carries one line of NPC commentary.
type Comment struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
