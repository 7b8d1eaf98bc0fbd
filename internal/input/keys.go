package input

import (
	"sync"
	"sync/atomic"
	"time"
)

// Key identifies a movement key.
type Key uint8

const (
	KeyForward Key = iota
	KeyBack
	KeyLeft
	KeyRight
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyForward:
		return "forward"
	case KeyBack:
		return "back"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	default:
		return "unknown"
	}
}

// DefaultHold is how long a press counts as held when the source only
// reports presses (terminals have no key-up events). Covers typical
// auto-repeat gaps.
const DefaultHold = 250 * time.Millisecond

// State maps keys to "is held". Written by the input goroutine, sampled by the
// tick goroutine.
type State struct {
	mu        sync.Mutex
	pressedAt map[Key]time.Time
	hold      time.Duration
	now       func() time.Time

	strike atomic.Bool
	quit   atomic.Bool
}

// NewState creates an empty key state. Non-positive hold uses DefaultHold.
func NewState(hold time.Duration) *State {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &State{
		pressedAt: make(map[Key]time.Time),
		hold:      hold,
		now:       time.Now,
	}
}

// Press records a key press; the key stays held for the hold window.
func (s *State) Press(k Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pressedAt[k] = s.now()
}

// Snapshot samples all keys at once for one tick.
func (s *State) Snapshot() map[Key]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	snap := make(map[Key]bool, 4)
	for _, k := range []Key{KeyForward, KeyBack, KeyLeft, KeyRight} {
		snap[k] = s.heldLocked(k, now)
	}
	return snap
}

func (s *State) heldLocked(k Key, now time.Time) bool {
	at, ok := s.pressedAt[k]
	return ok && now.Sub(at) < s.hold
}

// RequestStrike queues a player attack for the next tick.
func (s *State) RequestStrike() {
	s.strike.Store(true)
}

// TakeStrike consumes a queued attack.
func (s *State) TakeStrike() bool {
	return s.strike.Swap(false)
}

// RequestQuit marks that the player asked to leave.
func (s *State) RequestQuit() {
	s.quit.Store(true)
}

// QuitRequested reports whether RequestQuit was called.
func (s *State) QuitRequested() bool {
	return s.quit.Load()
}
