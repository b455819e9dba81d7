// ABOUTME: In-memory TTL cache for memoized sizing reports
// ABOUTME: Thread-safe sync.Map store keyed by a structural hash of the request

package cache

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mitchellh/hashstructure/v2"
)

type entry[V any] struct {
	data      V
	expiresAt time.Time
}

// Cache stores values for a fixed TTL. A zero TTL disables storage.
type Cache[V any] struct {
	store sync.Map
	ttl   time.Duration
	stop  chan struct{}
	once  sync.Once
}

// New creates a cache and starts its background cleanup loop.
// Call Close to stop the loop.
func New[V any](ttl time.Duration) *Cache[V] {
	c := &Cache[V]{
		ttl:  ttl,
		stop: make(chan struct{}),
	}
	go c.startCleanup(time.Minute)
	return c
}

// Key derives a stable cache key from any request value.
// Map iteration order does not affect the result.
func Key(namespace string, v any) (string, error) {
	h, err := hashstructure.Hash(v, hashstructure.FormatV2, nil)
	if err != nil {
		return "", fmt.Errorf("hashing cache key: %w", err)
	}
	return fmt.Sprintf("%s:%016x", namespace, h), nil
}

// TTL returns the configured lifetime of an entry
func (c *Cache[V]) TTL() time.Duration {
	return c.ttl
}

func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	val, ok := c.store.Load(key)
	if !ok {
		slog.Debug("Cache miss", "key", key)
		return zero, false
	}

	e := val.(entry[V])
	if time.Now().After(e.expiresAt) {
		c.store.Delete(key)
		slog.Debug("Cache expired", "key", key)
		return zero, false
	}

	slog.Debug("Cache hit", "key", key)
	return e.data, true
}

func (c *Cache[V]) Set(key string, value V) {
	if c.ttl <= 0 {
		return
	}
	c.store.Store(key, entry[V]{
		data:      value,
		expiresAt: time.Now().Add(c.ttl),
	})
	slog.Debug("Cache set", "key", key, "ttl", c.ttl)
}

func (c *Cache[V]) Clear(key string) {
	c.store.Delete(key)
}

// Len counts unexpired entries
func (c *Cache[V]) Len() int {
	now := time.Now()
	n := 0
	c.store.Range(func(_, val any) bool {
		if !now.After(val.(entry[V]).expiresAt) {
			n++
		}
		return true
	})
	return n
}

// Close stops the cleanup loop. It is safe to call more than once.
func (c *Cache[V]) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache[V]) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evictExpired(time.Now())
		}
	}
}

func (c *Cache[V]) evictExpired(now time.Time) {
	c.store.Range(func(key, val any) bool {
		if now.After(val.(entry[V]).expiresAt) {
			c.store.Delete(key)
		}
		return true
	})
}
