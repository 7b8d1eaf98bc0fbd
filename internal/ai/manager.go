package ai

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTickInterval is one frame at 60 FPS.
const DefaultTickInterval = time.Second / 60

// HookFunc runs once per frame around the AI tick. tick is the frame number.
type HookFunc func(tick uint64)

// TickManager drives all registered NPC controllers, one Step per frame.
// Every frame runs pre-tick hooks (player input), then the controllers, then
// post-tick hooks (drawing, publishing), all on the calling goroutine.
type TickManager struct {
	controllers     sync.Map // objectID -> Controller
	controllerCount atomic.Int32
	interval        time.Duration
	stopCh          chan struct{}
	stopOnce        sync.Once
	tick            atomic.Uint64

	hooksMu   sync.Mutex
	preTicks  []HookFunc
	postTicks []HookFunc
}

// NewTickManager creates new AI tick manager. Non-positive interval falls
// back to DefaultTickInterval.
func NewTickManager(interval time.Duration) *TickManager {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &TickManager{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Register registers and starts a controller.
func (m *TickManager) Register(controller Controller) {
	if prev, loaded := m.controllers.Swap(controller.ID(), controller); loaded {
		prev.(Controller).Stop()
	} else {
		m.controllerCount.Add(1)
	}
	controller.Start()

	slog.Debug("AI controller registered",
		"objectID", controller.ID(),
		"state", controller.State())
}

// Unregister stops and removes the controller of objectID.
func (m *TickManager) Unregister(objectID uint32) {
	value, ok := m.controllers.LoadAndDelete(objectID)
	if !ok {
		return
	}

	m.controllerCount.Add(-1)

	controller := value.(Controller)
	controller.Stop()

	slog.Debug("AI controller unregistered", "objectID", objectID)
}

// BeforeTick adds a hook run before controllers step.
func (m *TickManager) BeforeTick(fn HookFunc) {
	m.hooksMu.Lock()
	defer m.hooksMu.Unlock()
	m.preTicks = append(m.preTicks, fn)
}

// AfterTick adds a hook run after controllers step.
func (m *TickManager) AfterTick(fn HookFunc) {
	m.hooksMu.Lock()
	defer m.hooksMu.Unlock()
	m.postTicks = append(m.postTicks, fn)
}

// Start runs the frame loop (blocks until context is canceled or Stop is called).
func (m *TickManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("AI tick manager started", "interval", m.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("AI tick manager stopping", "ticks", m.Ticks())
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("AI tick manager stopped", "ticks", m.Ticks())
			return nil

		case <-ticker.C:
			m.Step()
		}
	}
}

// Stop stops the frame loop. Safe to call more than once.
func (m *TickManager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
	})
}

// Step runs a single frame synchronously.
func (m *TickManager) Step() {
	tick := m.tick.Add(1)

	m.hooksMu.Lock()
	pre := m.preTicks
	post := m.postTicks
	m.hooksMu.Unlock()

	for _, fn := range pre {
		fn(tick)
	}

	count := m.tickAll()

	for _, fn := range post {
		fn(tick)
	}

	if count > 0 && TraceEnabled() {
		slog.Debug("AI tick completed", "tick", tick, "controllers", count)
	}
}

// tickAll steps all registered controllers
func (m *TickManager) tickAll() int {
	count := 0
	m.controllers.Range(func(key, value any) bool {
		value.(Controller).Step()
		count++
		return true
	})
	return count
}

// Ticks returns the number of frames run so far.
func (m *TickManager) Ticks() uint64 {
	return m.tick.Load()
}

// Count returns number of registered controllers (O(1) cached count)
func (m *TickManager) Count() int {
	return int(m.controllerCount.Load())
}

// GetController returns controller for NPC
func (m *TickManager) GetController(objectID uint32) (Controller, error) {
	value, ok := m.controllers.Load(objectID)
	if !ok {
		return nil, fmt.Errorf("controller not found for objectID %d", objectID)
	}
	return value.(Controller), nil
}

// Each calls fn for every registered controller until fn returns false.
func (m *TickManager) Each(fn func(Controller) bool) {
	m.controllers.Range(func(_, value any) bool {
		return fn(value.(Controller))
	})
}
