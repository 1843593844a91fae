// Package cache provides a simple in-memory TTL cache. It fronts the
// playthrough store's List call, which hits sqlite otherwise.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// InMemory is a thread-safe in-memory cache with TTL. Expired entries are
// dropped lazily on read; with a handful of keys there is no need for a
// background sweeper.
type InMemory[T any] struct {
	mu    sync.Mutex
	items map[string]entry[T]
	ttl   time.Duration
}

// New creates an in-memory cache whose entries live for ttl.
func New[T any](ttl time.Duration) *InMemory[T] {
	return &InMemory[T]{
		items: make(map[string]entry[T]),
		ttl:   ttl,
	}
}

// Get retrieves a value. Returns false if the key is absent or expired.
func (c *InMemory[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		var zero T
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.items, key)
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores a value with the configured TTL.
func (c *InMemory[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry[T]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Delete removes a key. Used to invalidate after writes.
func (c *InMemory[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}
