package log

import "sync"

// MemoryLogger stores events in memory. Intended for tests and for the
// monitor's recent-event view; not suitable for long-running capture.
type MemoryLogger struct {
	mu     sync.Mutex
	events []Event
	max    int
}

// NewMemoryLogger creates a MemoryLogger keeping at most max events.
// max <= 0 means unbounded.
func NewMemoryLogger(max int) *MemoryLogger {
	return &MemoryLogger{max: max}
}

// Log appends the event, dropping the oldest when over capacity.
func (m *MemoryLogger) Log(event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, event)
	if m.max > 0 && len(m.events) > m.max {
		m.events = m.events[len(m.events)-m.max:]
	}
}

// Events returns a copy of the stored events.
func (m *MemoryLogger) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Reset discards all stored events.
func (m *MemoryLogger) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}

// Compile-time interface satisfaction check.
var _ Logger = (*MemoryLogger)(nil)
