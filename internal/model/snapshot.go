package model

// NpcSnapshot is one NPC as drawn or broadcast after a tick.
type NpcSnapshot struct {
	ID       uint32 `json:"id"`
	Name     string `json:"name"`
	State    State  `json:"state"`
	Position Vec3   `json:"position"`
	Facing   *Vec3  `json:"facing,omitempty"`
}

// Snapshot is the scene after one tick.
type Snapshot struct {
	Tick   uint64        `json:"tick"`
	Player Vec3          `json:"player"`
	Npcs   []NpcSnapshot `json:"npcs"`
}
