package ai

import (
	"log/slog"
	"sync/atomic"

	"github.com/udisondev/chasedemo/internal/model"
)

// NpcAgent binds a ChaseAI to the NPC it moves and the player it chases.
// The agent is the only writer of the NPC position.
type NpcAgent struct {
	npc       *model.Actor
	target    *model.Actor
	ai        *ChaseAI
	isRunning atomic.Bool
}

// NewNpcAgent creates an agent; it does not tick until Start.
func NewNpcAgent(npc, target *model.Actor, ai *ChaseAI) *NpcAgent {
	return &NpcAgent{
		npc:    npc,
		target: target,
		ai:     ai,
	}
}

// ID returns the NPC object ID.
func (a *NpcAgent) ID() uint32 {
	return a.npc.ObjectID()
}

// Npc returns the controlled NPC.
func (a *NpcAgent) Npc() *model.Actor {
	return a.npc
}

// AI returns the underlying state machine.
func (a *NpcAgent) AI() *ChaseAI {
	return a.ai
}

// State returns current behavior state.
func (a *NpcAgent) State() model.State {
	return a.ai.State()
}

// Start starts AI controller.
func (a *NpcAgent) Start() {
	a.isRunning.Store(true)
	slog.Debug("chase agent started",
		"npc", a.npc.Name(),
		"objectID", a.npc.ObjectID(),
		"state", a.ai.State())
}

// Stop stops AI controller and drops it back to IDLE.
func (a *NpcAgent) Stop() {
	a.isRunning.Store(false)
	a.ai.Reset()
	slog.Debug("chase agent stopped",
		"npc", a.npc.Name(),
		"objectID", a.npc.ObjectID())
}

// Step snapshots both positions, ticks the state machine and applies the
// resulting NPC position and facing.
func (a *NpcAgent) Step() {
	if !a.isRunning.Load() {
		return
	}

	npcPos := a.npc.Position()
	playerPos := a.target.Position()

	res := a.ai.Tick(npcPos, playerPos)
	if res.Moved {
		a.npc.SetPosition(res.Position)
	}
	if res.HasFacing {
		a.npc.LookAt(res.Facing)
	}
}

// PlayerStrike resolves a player melee swing at this NPC. Within attack range
// the NPC takes damage, otherwise it taunts the miss. Returns true on a hit.
// Must run on the tick goroutine.
func (a *NpcAgent) PlayerStrike(damage int32) bool {
	distance := a.npc.Position().Distance(a.target.Position())
	if distance <= a.ai.Tuning().AttackRange {
		a.ai.NotifyDamage(damage)
		return true
	}
	a.ai.NotifyMiss()
	return false
}
