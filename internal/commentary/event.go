package commentary

import (
	"errors"
	"fmt"

	"github.com/udisondev/chasedemo/internal/model"
)

// ErrUnknownEvent is returned by ParseEvent for names outside the fixed event set.
var ErrUnknownEvent = errors.New("unknown commentary event")

// Event identifies a situation the NPC comments on.
type Event string

const (
	EnteredIdle      Event = "enteredIdle"
	EnteredChasing   Event = "enteredChasing"
	EnteredAttacking Event = "enteredAttacking"
	TookDamage       Event = "tookDamage"
	PlayerMissed     Event = "playerMissed"
)

// Events lists every known event in a stable order.
func Events() []Event {
	return []Event{EnteredIdle, EnteredChasing, EnteredAttacking, TookDamage, PlayerMissed}
}

// EventForState returns the event fired when an NPC enters state s.
func EventForState(s model.State) Event {
	switch s {
	case model.StateChasing:
		return EnteredChasing
	case model.StateAttacking:
		return EnteredAttacking
	default:
		return EnteredIdle
	}
}

// ParseEvent validates an event name read from configuration.
func ParseEvent(name string) (Event, error) {
	for _, ev := range Events() {
		if string(ev) == name {
			return ev, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEvent, name)
}
