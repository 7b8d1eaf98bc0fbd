package ai

import (
	"log/slog"
	"time"

	"github.com/udisondev/chasedemo/internal/commentary"
	"github.com/udisondev/chasedemo/internal/model"
)

// Commentator receives state changes and ad-hoc events for flavor text.
// *commentary.Emitter implements it.
type Commentator interface {
	StateChanged(from, to model.State)
	Notify(ev commentary.Event) (string, bool)
}

// TransitionFunc observes state changes (journal, spectator feed).
type TransitionFunc func(t model.Transition)

// AttackFunc is called on every tick spent in ATTACKING with the current
// distance to the player. Hook for attack resolution; nil disables it.
type AttackFunc func(distance float64)

// TickResult is the outcome of one ChaseAI tick.
type TickResult struct {
	State        model.State
	Distance     float64
	Transitioned bool

	// Position is the NPC position after the tick; unchanged unless Moved.
	Position model.Vec3
	Moved    bool

	// Facing is the point the NPC should turn toward, valid if HasFacing.
	Facing    model.Vec3
	HasFacing bool
}

// ChaseAI implements the NPC behavior state machine.
// State machine: IDLE -> CHASING -> ATTACKING, driven by distance to the player.
// Not safe for concurrent use: Tick, NotifyDamage and NotifyMiss must be
// called from the tick goroutine.
type ChaseAI struct {
	npcID   uint32
	npcName string
	tuning  Tuning

	state model.State
	ticks uint64

	commentator Commentator
	observers   []TransitionFunc
	attackFunc  AttackFunc
	now         func() time.Time
}

// NewChaseAI creates a controller in IDLE. commentator may be nil.
func NewChaseAI(npcID uint32, npcName string, tuning Tuning, commentator Commentator) *ChaseAI {
	return &ChaseAI{
		npcID:       npcID,
		npcName:     npcName,
		tuning:      tuning,
		state:       model.StateIdle,
		commentator: commentator,
		now:         time.Now,
	}
}

// OnTransition registers an observer called after the commentator on every state change.
func (ai *ChaseAI) OnTransition(fn TransitionFunc) {
	ai.observers = append(ai.observers, fn)
}

// SetAttackFunc sets the attack hook.
func (ai *ChaseAI) SetAttackFunc(fn AttackFunc) {
	ai.attackFunc = fn
}

// State returns the current state.
func (ai *ChaseAI) State() model.State {
	return ai.state
}

// Ticks returns the number of ticks processed.
func (ai *ChaseAI) Ticks() uint64 {
	return ai.ticks
}

// Tuning returns the controller thresholds.
func (ai *ChaseAI) Tuning() Tuning {
	return ai.tuning
}

// Reset puts the controller back to IDLE without commentary.
func (ai *ChaseAI) Reset() {
	ai.state = model.StateIdle
}

// Tick evaluates one transition and applies the action of the resulting state.
// npcPos and playerPos are a snapshot for this tick.
func (ai *ChaseAI) Tick(npcPos, playerPos model.Vec3) TickResult {
	ai.ticks++

	distance := npcPos.Distance(playerPos)
	res := TickResult{
		Distance: distance,
		Position: npcPos,
	}

	if next := NextState(ai.state, distance, ai.tuning); next != ai.state {
		ai.transition(next, distance)
		res.Transitioned = true
	}
	res.State = ai.state

	switch ai.state {
	case model.StateChasing:
		ai.thinkChase(npcPos, playerPos, &res)
	case model.StateAttacking:
		if ai.attackFunc != nil {
			ai.attackFunc(distance)
		}
	case model.StateIdle:
		// waits for the player to come into sight
	}

	return res
}

// thinkChase steps toward the player and faces them.
// Coincident positions have no direction: skip the step for this tick.
func (ai *ChaseAI) thinkChase(npcPos, playerPos model.Vec3, res *TickResult) {
	dir, ok := playerPos.Sub(npcPos).Normalize()
	if !ok {
		if TraceEnabled() {
			slog.Debug("chase skipped, npc on top of player",
				"npc", ai.npcName,
				"objectID", ai.npcID)
		}
		return
	}

	res.Position = npcPos.Add(dir.Scale(ai.tuning.ChaseSpeed))
	res.Moved = true
	res.Facing = playerPos
	res.HasFacing = true
}

func (ai *ChaseAI) transition(next model.State, distance float64) {
	prev := ai.state
	ai.state = next

	if TraceEnabled() {
		slog.Debug("chase AI state changed",
			"npc", ai.npcName,
			"objectID", ai.npcID,
			"from", prev,
			"to", next,
			"distance", distance)
	}

	if ai.commentator != nil {
		ai.commentator.StateChanged(prev, next)
	}

	if len(ai.observers) == 0 {
		return
	}
	t := model.Transition{
		NpcID:    ai.npcID,
		NpcName:  ai.npcName,
		From:     prev,
		To:       next,
		Distance: distance,
		Tick:     ai.ticks,
		At:       ai.now(),
	}
	for _, fn := range ai.observers {
		fn(t)
	}
}

// NotifyDamage reacts to the NPC being hit.
func (ai *ChaseAI) NotifyDamage(amount int32) {
	if TraceEnabled() {
		slog.Debug("chase AI took damage",
			"npc", ai.npcName,
			"objectID", ai.npcID,
			"amount", amount,
			"state", ai.state)
	}
	if ai.commentator != nil {
		ai.commentator.Notify(commentary.TookDamage)
	}
}

// NotifyMiss reacts to a player attack that fell short.
func (ai *ChaseAI) NotifyMiss() {
	if ai.commentator != nil {
		ai.commentator.Notify(commentary.PlayerMissed)
	}
}
