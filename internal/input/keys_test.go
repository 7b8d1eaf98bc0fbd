package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func newTestState(hold time.Duration) (*State, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewState(hold)
	s.now = clock.now
	return s, clock
}

func TestState_PressHoldWindow(t *testing.T) {
	s, clock := newTestState(100 * time.Millisecond)

	assert.False(t, s.Snapshot()[KeyForward])

	s.Press(KeyForward)
	assert.True(t, s.Snapshot()[KeyForward])

	clock.t = clock.t.Add(99 * time.Millisecond)
	assert.True(t, s.Snapshot()[KeyForward])

	clock.t = clock.t.Add(time.Millisecond)
	assert.False(t, s.Snapshot()[KeyForward], "press expires after the hold window")
}

func TestState_RepeatedPressExtendsHold(t *testing.T) {
	s, clock := newTestState(100 * time.Millisecond)

	s.Press(KeyLeft)
	clock.t = clock.t.Add(80 * time.Millisecond)
	s.Press(KeyLeft)
	clock.t = clock.t.Add(80 * time.Millisecond)
	assert.True(t, s.Snapshot()[KeyLeft])
}

func TestState_Snapshot(t *testing.T) {
	s, _ := newTestState(0)
	s.Press(KeyForward)
	s.Press(KeyRight)

	assert.Equal(t, map[Key]bool{
		KeyForward: true,
		KeyBack:    false,
		KeyLeft:    false,
		KeyRight:   true,
	}, s.Snapshot())
}

func TestState_StrikeAndQuit(t *testing.T) {
	s := NewState(0)

	assert.False(t, s.TakeStrike())
	s.RequestStrike()
	s.RequestStrike()
	assert.True(t, s.TakeStrike())
	assert.False(t, s.TakeStrike(), "strike is consumed once")

	assert.False(t, s.QuitRequested())
	s.RequestQuit()
	assert.True(t, s.QuitRequested())
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "forward", KeyForward.String())
	assert.Equal(t, "right", KeyRight.String())
	assert.Equal(t, "unknown", Key(99).String())
}
