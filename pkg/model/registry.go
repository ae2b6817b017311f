package model

import "sync"

// Registry holds the live Device objects keyed by display name. Devices are
// rebuilt every refresh pass, but the registry persists across passes so
// collaborators can look a device up by name between refreshes.
//
// The registry is shared-read, exclusive-write: each pass replaces entries
// under the write lock, readers take the read lock.
type Registry struct {
	mu      sync.RWMutex
	devices map[string]*Device
	misses  map[string]int
}

// NewRegistry creates an empty device registry.
func NewRegistry() *Registry {
	return &Registry{
		devices: make(map[string]*Device),
		misses:  make(map[string]int),
	}
}

// Get returns the device with the given display name.
func (r *Registry) Get(name string) (*Device, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.devices[name]
	return d, ok
}

// Names returns all registered display names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.devices))
	for name := range r.devices {
		names = append(names, name)
	}
	return names
}

// Len returns the number of registered devices.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices)
}

// UpdateFromPass upserts the devices seen in one discovery pass and bumps
// the consecutive-miss counter for devices that were not seen. Devices are
// never removed: a missed discovery cycle must not drop a live device, the
// counter is exposed so callers can apply their own eviction policy.
func (r *Registry) UpdateFromPass(seen map[string]*Device) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, d := range seen {
		r.devices[name] = d
		delete(r.misses, name)
	}
	for name := range r.devices {
		if _, ok := seen[name]; !ok {
			r.misses[name]++
		}
	}
}

// MissCount returns how many consecutive passes failed to see the device.
func (r *Registry) MissCount(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.misses[name]
}
