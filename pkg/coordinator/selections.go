package coordinator

import "sync"

// SelectionKey identifies one receive channel on one device.
type SelectionKey struct {
	// Device is the device display name.
	Device string

	// RxChannel is the receive channel number.
	RxChannel int
}

// SelectionMap tracks the source label chosen for each receive channel.
// It is the only cross-cycle state not derivable from a device snapshot:
// a device's own subscription report cannot say which AES67 channel index
// the user picked, so the label is recorded when the subscribe command is
// issued and otherwise reconstructed by reconciliation after a restart.
//
// Runtime-set entries take precedence: reconciliation only fills absent
// keys and never overwrites.
type SelectionMap struct {
	mu sync.RWMutex
	m  map[SelectionKey]string
}

// NewSelectionMap creates an empty selection map.
func NewSelectionMap() *SelectionMap {
	return &SelectionMap{m: make(map[SelectionKey]string)}
}

// Get returns the selection for the key.
func (s *SelectionMap) Get(key SelectionKey) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

// Set records a runtime selection, overwriting any previous value.
func (s *SelectionMap) Set(key SelectionKey, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = label
}

// SetIfAbsent records a reconciled selection only when the key has no
// entry yet. Returns true when the entry was added.
func (s *SelectionMap) SetIfAbsent(key SelectionKey, label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[key]; ok {
		return false
	}
	s.m[key] = label
	return true
}

// Remove clears the selection for the key.
func (s *SelectionMap) Remove(key SelectionKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
}

// Len returns the number of recorded selections.
func (s *SelectionMap) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
