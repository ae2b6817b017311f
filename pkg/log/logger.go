package log

// Logger receives the events a refresh pass emits: resolved mDNS records,
// SAP announcements, AES67 command frames and pass state transitions.
type Logger interface {
	// Log records one event. Implementations must be safe for concurrent
	// use; the discovery and SAP stages log from their own goroutines.
	// Log must not block the pass.
	Log(event Event)
}

// NoopLogger discards every event. Components that take a Logger fall back
// to it when handed nil, so passes run unchanged with logging off.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
