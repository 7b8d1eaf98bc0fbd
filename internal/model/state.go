package model

import "fmt"

// State represents the behavior state of a chasing NPC.
type State int32

const (
	// StateIdle - NPC stands still and waits for a player to come into sight
	StateIdle State = iota
	// StateChasing - NPC walks straight toward the player
	StateChasing
	// StateAttacking - NPC is in melee contact and holds position
	StateAttacking
)

// String returns human-readable state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateChasing:
		return "CHASING"
	case StateAttacking:
		return "ATTACKING"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether s is one of the defined states.
func (s State) Valid() bool {
	return s >= StateIdle && s <= StateAttacking
}

// ParseState converts a state name produced by String back to State.
func ParseState(name string) (State, error) {
	switch name {
	case "IDLE":
		return StateIdle, nil
	case "CHASING":
		return StateChasing, nil
	case "ATTACKING":
		return StateAttacking, nil
	default:
		return StateIdle, fmt.Errorf("unknown state %q", name)
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid state %d", int32(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
