package commentary

import "log/slog"

// Sink displays a commentary line. Implementations must not block the tick.
type Sink interface {
	Display(text string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(text string)

// Display calls f(text).
func (f SinkFunc) Display(text string) {
	f(text)
}

// LogSink writes commentary to the structured log.
type LogSink struct {
	Speaker string
}

// Display logs the line at info level.
func (s LogSink) Display(text string) {
	slog.Info("npc says", "speaker", s.Speaker, "text", text)
}

// MultiSink forwards each line to every sink in order.
type MultiSink []Sink

// Display fans text out to all sinks, skipping nil entries.
func (m MultiSink) Display(text string) {
	for _, s := range m {
		if s != nil {
			s.Display(text)
		}
	}
}
