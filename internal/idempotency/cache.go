// Package idempotency caches the first response produced for a
// client-supplied key so that retried mutations replay it instead of
// re-executing side effects.
package idempotency

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTTL        = 24 * time.Hour
	DefaultMaxEntries = 1024
)

// Cache is a keyed response cache scoped by operation name, so the same key
// used for different operations never collides. Entries expire after a fixed
// TTL; beyond the entry bound the least recently used entry is evicted.
type Cache[V any] struct {
	group   singleflight.Group
	entries *expirable.LRU[string, V]
}

func New[V any](maxEntries int, ttl time.Duration) *Cache[V] {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[V]{
		entries: expirable.NewLRU[string, V](maxEntries, nil, ttl),
	}
}

// Do returns the cached value for (op, key) if a live entry exists; otherwise
// it runs compute, caches a successful result, and returns it. An empty key
// disables caching for the call. Concurrent calls with the same (op, key)
// share a single in-flight compute rather than running it twice. A failed
// compute is never cached, so a later retry runs again.
func (c *Cache[V]) Do(op, key string, compute func() (V, error)) (V, error) {
	if key == "" {
		return compute()
	}

	k := op + "\x00" + key
	if v, ok := c.entries.Get(k); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(k, func() (any, error) {
		// A concurrent caller may have populated the entry while this
		// one was waiting on the flight group.
		if v, ok := c.entries.Get(k); ok {
			return v, nil
		}
		v, err := compute()
		if err != nil {
			return v, err
		}
		c.entries.Add(k, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}
