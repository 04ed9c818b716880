// Package cache keeps recently fetched list pages and settings so repeated
// screen loads do not hit the backend. Values are stored JSON encoded so the
// in-memory and redis stores are interchangeable.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type QueryCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	// Invalidate drops every key starting with prefix.
	Invalidate(ctx context.Context, prefix string) error
}

type entry struct {
	val     []byte
	expires time.Time
}

type MemoryCache struct {
	mu    sync.RWMutex
	store map[string]entry
	now   func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		store: make(map[string]entry),
		now:   time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.store[key]
	if !ok || (!e.expires.IsZero() && !c.now().Before(e.expires)) {
		return nil, false, nil
	}
	return e.val, true, nil
}

// Set stores val under key. A non-positive ttl never expires.
func (c *MemoryCache) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := entry{val: val}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.store[key] = e
	return nil
}

func (c *MemoryCache) Invalidate(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.store {
		if strings.HasPrefix(k, prefix) {
			delete(c.store, k)
		}
	}
	return nil
}

// Sweep removes expired entries.
func (c *MemoryCache) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, e := range c.store {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(c.store, k)
		}
	}
}
