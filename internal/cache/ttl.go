// Package cache provides a small thread-safe TTL memoization primitive.
// Each cache instance is one region with its own TTL policy; the location
// facade runs a short-TTL region for current reports and a longer one for
// landmark radius queries.
package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is a generic expiry-based memoizer. Expired entries are evicted
// lazily on access; there is no background sweeper. The entry map is the
// engine's only mutable shared state, guarded by a single mutex, and
// concurrent misses on one key are collapsed into a single computation.
type TTL[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	group   singleflight.Group

	// now is swappable for expiry tests.
	now func() time.Time

	// Optional hit/miss hooks, wired to metrics by the composition root.
	OnHit  func()
	OnMiss func()
}

func NewTTL[V any]() *TTL[V] {
	return &TTL[V]{
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// GetOrCompute returns the live cached value for key, or invokes compute,
// stores its result with a fresh expiry, and returns it. Errors from
// compute are returned as-is and never cached. Concurrent callers missing
// on the same key share one compute invocation.
func (c *TTL[V]) GetOrCompute(key string, ttl time.Duration, compute func() (V, error)) (V, error) {
	if v, ok := c.lookup(key); ok {
		if c.OnHit != nil {
			c.OnHit()
		}
		return v, nil
	}
	if c.OnMiss != nil {
		c.OnMiss()
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		// A concurrent flight may have stored the value while this caller
		// was waiting on the group.
		if v, ok := c.lookup(key); ok {
			return v, nil
		}

		v, err := compute()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = entry[V]{value: v, expiresAt: c.now().Add(ttl)}
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

// Invalidate drops a single key.
func (c *TTL[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len reports the number of live entries, evicting expired ones first.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	return len(c.entries)
}

func (c *TTL[V]) lookup(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}
