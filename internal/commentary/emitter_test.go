package commentary

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/chasedemo/internal/model"
)

type recordingSink struct {
	lines []string
}

func (s *recordingSink) Display(text string) {
	s.lines = append(s.lines, text)
}

func TestEmitter_NotifyPicksFromPool(t *testing.T) {
	pool := DefaultPool()
	sink := &recordingSink{}
	e := NewEmitter(pool, sink)

	for range 50 {
		line, ok := e.Notify(EnteredChasing)
		require.True(t, ok)
		assert.True(t, pool.Contains(EnteredChasing, line), "line %q not in chasing pool", line)
	}
	assert.Len(t, sink.lines, 50)
}

func TestEmitter_AllLinesReachable(t *testing.T) {
	pool := DefaultPool()
	e := NewEmitter(pool, nil, WithRand(rand.New(rand.NewPCG(1, 2))))

	for _, ev := range Events() {
		seen := make(map[string]bool)
		for range 1000 {
			line, ok := e.Notify(ev)
			require.True(t, ok)
			seen[line] = true
		}
		assert.Len(t, seen, pool.Size(ev), "event %s: every line should eventually be chosen", ev)
	}
}

func TestEmitter_DeterministicSource(t *testing.T) {
	pool := NewPool(map[Event][]string{
		EnteredAttacking: {"first", "second", "third"},
	})
	sink := &recordingSink{}
	e := NewEmitter(pool, sink, WithIntN(func(n int) int { return n - 1 }))

	line, ok := e.Notify(EnteredAttacking)
	require.True(t, ok)
	assert.Equal(t, "third", line)
	assert.Equal(t, []string{"third"}, sink.lines)
}

func TestEmitter_OutOfRangeSourceIsClamped(t *testing.T) {
	pool := NewPool(map[Event][]string{TookDamage: {"ow"}})
	e := NewEmitter(pool, nil, WithIntN(func(n int) int { return n + 5 }))

	line, ok := e.Notify(TookDamage)
	require.True(t, ok)
	assert.Equal(t, "ow", line)
}

func TestEmitter_EmptyPoolIsNoop(t *testing.T) {
	pool := NewPool(map[Event][]string{
		EnteredIdle: {},
	})
	sink := &recordingSink{}
	called := false
	e := NewEmitter(pool, sink, WithIntN(func(n int) int {
		called = true
		return 0
	}))

	tests := []struct {
		name string
		ev   Event
	}{
		{"empty lines", EnteredIdle},
		{"missing event", PlayerMissed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, ok := e.Notify(tt.ev)
			assert.False(t, ok)
			assert.Empty(t, line)
		})
	}

	assert.Empty(t, sink.lines)
	assert.False(t, called, "random source must not be consulted for an empty pool")
}

func TestEmitter_StateChanged(t *testing.T) {
	pool := DefaultPool()
	sink := &recordingSink{}
	e := NewEmitter(pool, sink)

	e.StateChanged(model.StateChasing, model.StateAttacking)
	require.Len(t, sink.lines, 1)
	assert.True(t, pool.Contains(EnteredAttacking, sink.lines[0]))

	e.StateChanged(model.StateAttacking, model.StateAttacking)
	assert.Len(t, sink.lines, 1, "self-transition must not comment")

	e.StateChanged(model.StateChasing, model.StateIdle)
	require.Len(t, sink.lines, 2)
	assert.True(t, pool.Contains(EnteredIdle, sink.lines[1]))
}
