// Package cache provides best-effort verdict cache implementations.
package cache

import (
	"context"
	"sync"
	"time"
)

// entry is one cached payload with its expiry.
type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-memory TTL cache for tests and single-process deployments.
type Memory struct {
	mu    sync.RWMutex
	items map[string]entry
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]entry)}
}

// Get returns the cached payload and true on a fresh hit.
func (c *Memory) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores the payload with a TTL.
func (c *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.items[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// Noop discards all writes and never hits. Used when caching is disabled.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string) ([]byte, bool)              { return nil, false }
func (Noop) Set(ctx context.Context, key string, value []byte, d time.Duration) {}
