package sap

import (
	"sort"
	"sync"
)

// Cache accumulates announced streams keyed by session name for the
// lifetime of the process. SAP announcements are periodic and sparse, so a
// stream's absence from one listen window must not be treated as removal:
// entries are only added or overwritten, never expired by a miss.
//
// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	streams map[string]StreamInfo
}

// NewCache creates an empty stream cache.
func NewCache() *Cache {
	return &Cache{streams: make(map[string]StreamInfo)}
}

// Upsert adds or overwrites the stream under its session name.
func (c *Cache) Upsert(info StreamInfo) {
	if info.SessionName == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.streams[info.SessionName] = info
}

// UpsertAll merges one listen window's discoveries into the cache.
func (c *Cache) UpsertAll(infos map[string]StreamInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, info := range infos {
		if name != "" {
			c.streams[name] = info
		}
	}
}

// Get returns the stream with the given session name.
func (c *Cache) Get(sessionName string) (StreamInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	info, ok := c.streams[sessionName]
	return info, ok
}

// Len returns the number of cached streams.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.streams)
}

// Names returns all session names in sorted order.
func (c *Cache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.streams))
	for name := range c.streams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a copy of all cached streams.
func (c *Cache) Snapshot() map[string]StreamInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]StreamInfo, len(c.streams))
	for name, info := range c.streams {
		out[name] = info
	}
	return out
}
