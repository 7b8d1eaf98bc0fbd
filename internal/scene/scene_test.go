package scene

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/chasedemo/internal/ai"
	"github.com/udisondev/chasedemo/internal/commentary"
	"github.com/udisondev/chasedemo/internal/input"
	"github.com/udisondev/chasedemo/internal/model"
)

type recordingSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *recordingSink) Display(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, text)
}

func defaultOptions(sink commentary.Sink) Options {
	return Options{
		Tuning:          ai.DefaultTuning(),
		PlayerMoveSpeed: input.DefaultPlayerMoveSpeed,
		Player:          model.NewVec3(-5, 0.5, 0),
		Npcs:            []NpcSpec{{Name: "Box", Position: model.NewVec3(5, 0.5, 0)}},
		Sink:            sink,
	}
}

func TestScene_StartsIdleAtSightBoundary(t *testing.T) {
	mgr := ai.NewTickManager(0)
	sink := &recordingSink{}
	s := New(defaultOptions(sink), mgr)

	for range 10 {
		mgr.Step()
	}

	require.Len(t, s.Agents(), 1)
	assert.Equal(t, model.StateIdle, s.Agents()[0].State(), "distance 10 is not inside sight")
	assert.Empty(t, sink.lines)
}

func TestScene_ChaseToAttackWithScriptedPlayer(t *testing.T) {
	mgr := ai.NewTickManager(0)
	sink := &recordingSink{}
	var transitions []model.Transition

	opts := defaultOptions(sink)
	opts.OnTransition = func(tr model.Transition) { transitions = append(transitions, tr) }
	s := New(opts, mgr)

	// Player steps toward the NPC and stops at the origin.
	s.UseScript(input.NewScriptedPath(input.DefaultPlayerMoveSpeed, model.NewVec3(0, 0.5, 0)))

	var frames []model.Snapshot
	s.OnFrame(func(snap model.Snapshot) { frames = append(frames, snap) })

	agent := s.Agents()[0]
	for range 500 {
		mgr.Step()
		if agent.State() == model.StateAttacking {
			break
		}
	}

	require.Equal(t, model.StateAttacking, agent.State())
	require.Len(t, transitions, 2)
	assert.Equal(t, model.StateChasing, transitions[0].To)
	assert.Equal(t, model.StateAttacking, transitions[1].To)

	require.Len(t, sink.lines, 2)
	pool := commentary.DefaultPool()
	assert.True(t, pool.Contains(commentary.EnteredChasing, strings.TrimPrefix(sink.lines[0], "Box: ")))
	assert.True(t, pool.Contains(commentary.EnteredAttacking, strings.TrimPrefix(sink.lines[1], "Box: ")))

	last := frames[len(frames)-1]
	assert.Equal(t, model.StateAttacking, last.Npcs[0].State)
	require.NotNil(t, last.Npcs[0].Facing)
	assert.LessOrEqual(t, last.Player.Distance(last.Npcs[0].Position), ai.DefaultAttackRange)
}

func TestScene_KeyboardMovesPlayerAndStrikes(t *testing.T) {
	mgr := ai.NewTickManager(0)
	sink := &recordingSink{}

	opts := defaultOptions(sink)
	opts.Player = model.NewVec3(4, 0.5, 0)
	opts.IntN = func(int) int { return 0 }
	s := New(opts, mgr)

	keys := input.NewState(time.Hour)
	s.UseKeyboard(keys)

	keys.Press(input.KeyForward)
	mgr.Step()
	assert.True(t, s.Player().Position().ApproxEqual(model.NewVec3(4, 0.5, 0.1), 1e-12))

	keys.RequestStrike()
	mgr.Step()

	// Strike lands before the NPC ticks into ATTACKING.
	pool := commentary.DefaultPool()
	assert.Equal(t, []string{
		"Box: " + pool.Lines(commentary.EnteredChasing)[0],
		"Box: " + pool.Lines(commentary.TookDamage)[0],
		"Box: " + pool.Lines(commentary.EnteredAttacking)[0],
	}, sink.lines)
}

func TestScene_StrikeOutOfRangeMisses(t *testing.T) {
	mgr := ai.NewTickManager(0)
	sink := &recordingSink{}

	opts := defaultOptions(sink)
	opts.Player = model.NewVec3(-9, 0.5, 0) // 14 units away, out of sight
	opts.IntN = func(int) int { return 0 }
	s := New(opts, mgr)

	keys := input.NewState(0)
	s.UseKeyboard(keys)
	keys.RequestStrike()
	mgr.Step()

	pool := commentary.DefaultPool()
	assert.Equal(t, []string{"Box: " + pool.Lines(commentary.PlayerMissed)[0]}, sink.lines)
}

func TestScene_MultipleNpcsAreIndependent(t *testing.T) {
	mgr := ai.NewTickManager(0)
	opts := defaultOptions(nil)
	opts.Player = model.NewVec3(0, 0.5, 0)
	opts.Npcs = []NpcSpec{
		{Name: "Near", Position: model.NewVec3(3, 0.5, 0)},
		{Name: "Far", Position: model.NewVec3(0, 0.5, 15)},
	}
	s := New(opts, mgr)

	mgr.Step()

	snap := s.Snapshot(mgr.Ticks())
	require.Len(t, snap.Npcs, 2)
	assert.Equal(t, model.StateChasing, snap.Npcs[0].State)
	assert.Equal(t, model.StateIdle, snap.Npcs[1].State)
	assert.Nil(t, snap.Npcs[1].Facing)
	assert.NotEqual(t, snap.Npcs[0].ID, snap.Npcs[1].ID)
}
