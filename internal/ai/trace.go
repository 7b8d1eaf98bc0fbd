package ai

import "sync/atomic"

// traceEnabled gates per-tick debug logs. Checked on the hot path instead of
// asking slog for the level on every tick.
var traceEnabled atomic.Bool

// EnableTrace turns per-tick AI logging on or off. Called from main after the
// log level is known.
func EnableTrace(enabled bool) {
	traceEnabled.Store(enabled)
}

// TraceEnabled reports whether per-tick AI logging is on.
func TraceEnabled() bool {
	return traceEnabled.Load()
}
