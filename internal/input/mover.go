package input

import "github.com/udisondev/chasedemo/internal/model"

// DefaultPlayerMoveSpeed is the player step per tick.
const DefaultPlayerMoveSpeed = 0.1

// Mover turns held keys into player movement on the ground plane (X/Z).
// Forward is +Z, right is +X. Diagonals are normalized so they are not faster.
type Mover struct {
	Speed float64
}

// Step returns the player position after one tick with keys held.
func (m Mover) Step(pos model.Vec3, keys map[Key]bool) model.Vec3 {
	var dir model.Vec3
	if keys[KeyForward] {
		dir.Z++
	}
	if keys[KeyBack] {
		dir.Z--
	}
	if keys[KeyRight] {
		dir.X++
	}
	if keys[KeyLeft] {
		dir.X--
	}

	unit, ok := dir.Normalize()
	if !ok {
		return pos
	}
	return pos.Add(unit.Scale(m.Speed))
}

// ScriptedPath walks the player through waypoints in a loop. Used when no
// keyboard is attached.
type ScriptedPath struct {
	waypoints []model.Vec3
	speed     float64
	next      int
}

// NewScriptedPath creates a looping walk. Empty waypoints make Step a no-op.
func NewScriptedPath(speed float64, waypoints ...model.Vec3) *ScriptedPath {
	return &ScriptedPath{
		waypoints: waypoints,
		speed:     speed,
	}
}

// Step moves pos toward the current waypoint, advancing to the next one on arrival.
func (p *ScriptedPath) Step(pos model.Vec3) model.Vec3 {
	if len(p.waypoints) == 0 {
		return pos
	}

	target := p.waypoints[p.next]
	delta := target.Sub(pos)
	if delta.Length() <= p.speed {
		p.next = (p.next + 1) % len(p.waypoints)
		return target
	}

	dir, _ := delta.Normalize()
	return pos.Add(dir.Scale(p.speed))
}
