// Package cache provides a small in-memory TTL cache. Entries expire
// lazily on read; there is no background eviction because the key space
// is a finite set of titles and slugs in practice.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value     T
	timestamp time.Time
}

// Cache maps string keys to values of one type with a single TTL.
// Endpoint classes with different freshness needs get their own Cache
// instance. Safe for concurrent use; a write replaces the whole value.
type Cache[T any] struct {
	mu      sync.Mutex
	entries map[string]entry[T]
	ttl     time.Duration

	// now is swappable so tests can advance the clock.
	now func() time.Time
}

// New creates a cache whose entries stay valid for ttl after being set.
func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the value for key and whether it is still fresh. An expired
// entry counts as a miss and is dropped from the backing map.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if c.now().Sub(e.timestamp) >= c.ttl {
		delete(c.entries, key)
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous entry and resetting
// its TTL.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[T]{value: value, timestamp: c.now()}
}

// Len reports how many entries the backing map holds, expired or not.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// SetClock replaces the cache's time source. Tests use this to simulate
// TTL expiry without sleeping.
func (c *Cache[T]) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
