package journal

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/udisondev/chasedemo/internal/model"
)

// flushTimeout bounds how long pending transitions may take to drain on shutdown.
const flushTimeout = 5 * time.Second

// Store persists transitions. *db.TransitionRepository implements it.
type Store interface {
	SaveTransition(ctx context.Context, t model.Transition) error
}

// Recorder moves transitions off the tick goroutine into a Store.
// Record never blocks; when the buffer is full the transition is dropped.
type Recorder struct {
	store   Store
	queue   chan model.Transition
	dropped atomic.Uint64
	saved   atomic.Uint64
	failed  atomic.Uint64
}

// NewRecorder creates a recorder with a buffer of size entries.
func NewRecorder(store Store, size int) *Recorder {
	if size <= 0 {
		size = 1
	}
	return &Recorder{
		store: store,
		queue: make(chan model.Transition, size),
	}
}

// Record enqueues t. Safe to call from the tick goroutine.
func (r *Recorder) Record(t model.Transition) {
	select {
	case r.queue <- t:
	default:
		if r.dropped.Add(1) == 1 {
			slog.Warn("journal buffer full, dropping transitions", "npc", t.NpcName)
		}
	}
}

// Run drains the queue until ctx is canceled, then flushes what is left.
func (r *Recorder) Run(ctx context.Context) error {
	slog.Info("transition journal started", "buffer", cap(r.queue))

	for {
		select {
		case <-ctx.Done():
			r.flush()
			slog.Info("transition journal stopped",
				"saved", r.saved.Load(),
				"failed", r.failed.Load(),
				"dropped", r.dropped.Load())
			return nil
		case t := <-r.queue:
			r.save(ctx, t)
		}
	}
}

func (r *Recorder) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	for {
		select {
		case t := <-r.queue:
			r.save(ctx, t)
		default:
			return
		}
	}
}

func (r *Recorder) save(ctx context.Context, t model.Transition) {
	if err := r.store.SaveTransition(ctx, t); err != nil {
		r.failed.Add(1)
		slog.Error("saving transition",
			"npc", t.NpcName,
			"from", t.From,
			"to", t.To,
			"err", err)
		return
	}
	r.saved.Add(1)
}

// Dropped returns how many transitions were discarded on a full buffer.
func (r *Recorder) Dropped() uint64 {
	return r.dropped.Load()
}

// Saved returns how many transitions reached the store.
func (r *Recorder) Saved() uint64 {
	return r.saved.Load()
}
