package commentary

import "slices"

// Pool maps events to candidate lines. Immutable after construction.
type Pool struct {
	lines map[Event][]string
}

// NewPool copies lines into a new pool. Events with no lines are left out,
// so Lines reports them as absent.
func NewPool(lines map[Event][]string) *Pool {
	p := &Pool{lines: make(map[Event][]string, len(lines))}
	for ev, l := range lines {
		if len(l) == 0 {
			continue
		}
		p.lines[ev] = slices.Clone(l)
	}
	return p
}

// Lines returns a copy of the lines for ev, or nil if there are none.
func (p *Pool) Lines(ev Event) []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.lines[ev])
}

// Contains reports whether line belongs to the pool of ev.
func (p *Pool) Contains(ev Event, line string) bool {
	if p == nil {
		return false
	}
	return slices.Contains(p.lines[ev], line)
}

// Size returns the number of lines configured for ev.
func (p *Pool) Size(ev Event) int {
	if p == nil {
		return 0
	}
	return len(p.lines[ev])
}

// pick returns the i-th line of ev without copying the slice.
func (p *Pool) pick(ev Event, i int) string {
	return p.lines[ev][i]
}

// Merge returns a new pool where every event present in overrides replaces
// the corresponding entry of p.
func (p *Pool) Merge(overrides map[Event][]string) *Pool {
	merged := make(map[Event][]string, len(p.lines)+len(overrides))
	for ev, l := range p.lines {
		merged[ev] = l
	}
	for ev, l := range overrides {
		merged[ev] = l
	}
	return NewPool(merged)
}

// DefaultPool returns the built-in flavor text.
func DefaultPool() *Pool {
	return NewPool(map[Event][]string{
		EnteredIdle: {
			"Where did you go? Fine, I'll just stand here.",
			"Hmph. Not worth the effort.",
			"Back to guarding this very interesting patch of grass.",
		},
		EnteredChasing: {
			"Hey! You there! Stop right where you are!",
			"I see you! You can't outrun a box forever!",
			"Get back here, you round menace!",
		},
		EnteredAttacking: {
			"Take this! Box bash!",
			"Gotcha! Prepare for a corner to the shin!",
			"En garde, sphere!",
		},
		TookDamage: {
			"Ow! My corners!",
			"That's going to leave a dent.",
		},
		PlayerMissed: {
			"Ha! Missed me!",
			"Is that all you've got?",
		},
	})
}
