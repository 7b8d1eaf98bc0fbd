package ai

import "github.com/udisondev/chasedemo/internal/model"

// Default chase tuning, matching the original scene.
const (
	DefaultSightDistance = 10.0
	DefaultAttackRange   = 1.5
	DefaultChaseSpeed    = 0.05 // units per tick
)

// Tuning holds the distance thresholds and speed of a chasing NPC.
type Tuning struct {
	SightDistance float64
	AttackRange   float64
	ChaseSpeed    float64
}

// DefaultTuning returns the stock thresholds.
func DefaultTuning() Tuning {
	return Tuning{
		SightDistance: DefaultSightDistance,
		AttackRange:   DefaultAttackRange,
		ChaseSpeed:    DefaultChaseSpeed,
	}
}

// NextState resolves at most one transition from current given the distance
// to the player. Sight is strict (<), attack range is inclusive (<=).
func NextState(current model.State, distance float64, t Tuning) model.State {
	switch current {
	case model.StateIdle:
		if distance < t.SightDistance {
			return model.StateChasing
		}
	case model.StateChasing:
		if distance <= t.AttackRange {
			return model.StateAttacking
		}
		if distance > t.SightDistance {
			return model.StateIdle
		}
	case model.StateAttacking:
		if distance > t.AttackRange {
			return model.StateChasing
		}
	}
	return current
}
