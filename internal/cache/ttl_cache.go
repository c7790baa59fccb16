// Package cache provides a small thread-safe cache whose entries expire
// together.
package cache

import (
	"sync"
	"time"
)

// TTLCache holds key-value pairs under a single timestamp. Once the TTL has
// passed since the last write, every entry is stale.
type TTLCache[K comparable, V any] struct {
	mu        sync.RWMutex
	data      map[K]V
	timestamp time.Time
	ttl       time.Duration
	now       func() time.Time
}

// New creates an empty, expired TTLCache.
func New[K comparable, V any](ttl time.Duration) *TTLCache[K, V] {
	return &TTLCache[K, V]{
		data: make(map[K]V),
		ttl:  ttl,
		now:  time.Now,
	}
}

// WithClock replaces the time source. It is meant for tests.
func (c *TTLCache[K, V]) WithClock(now func() time.Time) *TTLCache[K, V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	return c
}

// Get returns the value for key while the cache is fresh.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.expiredLocked() {
		var zero V
		return zero, false
	}
	value, ok := c.data[key]
	return value, ok
}

// Set stores value and restarts the TTL for the whole cache. Stale entries
// are dropped first.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value)
}

// GetOrLoad returns the fresh value for key, or calls load and stores its
// result. Concurrent callers for a stale key share one load.
func (c *TTLCache[K, V]) GetOrLoad(key K, load func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.expiredLocked() {
		if v, ok := c.data[key]; ok {
			return v, nil
		}
	}

	v, err := load()
	if err != nil {
		var zero V
		return zero, err
	}
	c.setLocked(key, v)
	return v, nil
}

func (c *TTLCache[K, V]) setLocked(key K, value V) {
	if c.expiredLocked() {
		c.data = make(map[K]V)
	}
	c.data[key] = value
	c.timestamp = c.now()
}

// IsExpired reports whether the TTL has passed. An empty cache that was never
// written is expired.
func (c *TTLCache[K, V]) IsExpired() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.expiredLocked()
}

// expiredLocked MUST be called with at least a read lock held.
func (c *TTLCache[K, V]) expiredLocked() bool {
	return c.timestamp.IsZero() || c.now().Sub(c.timestamp) >= c.ttl
}

// Invalidate clears all data and marks the cache expired.
func (c *TTLCache[K, V]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = make(map[K]V)
	c.timestamp = time.Time{}
}

// Len returns the number of stored entries, stale or not.
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
