package commentary

import (
	"log/slog"
	"math/rand/v2"

	"github.com/udisondev/chasedemo/internal/model"
)

// IntNFunc returns a uniform random integer in [0, n).
type IntNFunc func(n int) int

// Emitter picks a random line for an event and forwards it to a sink.
// It is driven from the tick goroutine and is not safe for concurrent use
// unless the injected random source is.
type Emitter struct {
	pool *Pool
	sink Sink
	intN IntNFunc
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithIntN replaces the random source, e.g. with a deterministic one in tests.
func WithIntN(fn IntNFunc) Option {
	return func(e *Emitter) {
		e.intN = fn
	}
}

// WithRand draws selections from r.
func WithRand(r *rand.Rand) Option {
	return func(e *Emitter) {
		e.intN = r.IntN
	}
}

// NewEmitter creates an emitter over pool writing to sink.
func NewEmitter(pool *Pool, sink Sink, opts ...Option) *Emitter {
	e := &Emitter{
		pool: pool,
		sink: sink,
		intN: rand.IntN,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Notify selects one line for ev uniformly at random and displays it.
// Returns false, and displays nothing, if ev has no lines.
func (e *Emitter) Notify(ev Event) (string, bool) {
	n := e.pool.Size(ev)
	if n == 0 {
		slog.Debug("no commentary for event", "event", ev)
		return "", false
	}

	i := e.intN(n)
	if i < 0 || i >= n {
		i = 0
	}
	line := e.pool.pick(ev, i)

	if e.sink != nil {
		e.sink.Display(line)
	}
	return line, true
}

// StateChanged comments on an NPC entering state to.
func (e *Emitter) StateChanged(from, to model.State) {
	if from == to {
		return
	}
	e.Notify(EventForState(to))
}

// Pool returns the emitter's line pool.
func (e *Emitter) Pool() *Pool {
	return e.pool
}
