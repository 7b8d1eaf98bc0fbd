package ai

import "github.com/udisondev/chasedemo/internal/model"

// Controller represents an AI controller driven by TickManager
type Controller interface {
	// ID returns the object ID of the controlled NPC
	ID() uint32

	// Start starts AI controller
	Start()

	// Stop stops AI controller
	Stop()

	// Step performs one AI tick (called once per frame)
	Step()

	// State returns current behavior state
	State() model.State
}
