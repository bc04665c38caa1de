// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultMaxEntries bounds the in-memory cache when no limit is given.
const DefaultMaxEntries = 10000

type memoryEntry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// MemoryCache is a bounded in-process cache. When full it evicts the
// oldest-inserted entry first. The clock is injectable for tests.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	order      []string // insertion order, may hold stale keys
	maxEntries int
	now        func() time.Time

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewMemoryCache returns a cache holding at most maxEntries values.
// Non-positive maxEntries selects DefaultMaxEntries.
func NewMemoryCache(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryCache{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// SetClock replaces the cache clock. Test use only.
func (c *MemoryCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// Get returns the live value for key.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return e.value, true
}

// Set stores value under key, evicting the oldest entry when full.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}

	if _, exists := c.entries[key]; !exists {
		for len(c.entries) >= c.maxEntries {
			c.evictOldestLocked()
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = memoryEntry{value: value, expiresAt: expiresAt}
}

// evictOldestLocked drops the oldest live entry, skipping order slots
// whose key was already deleted.
func (c *MemoryCache) evictOldestLocked() {
	for len(c.order) > 0 {
		key := c.order[0]
		c.order = c.order[1:]
		if _, ok := c.entries[key]; ok {
			delete(c.entries, key)
			return
		}
	}
}

// Delete removes key.
func (c *MemoryCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// DeleteByPrefix removes every key with the given prefix.
func (c *MemoryCache) DeleteByPrefix(_ context.Context, prefix string) {
	c.mu.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

// Clear removes every key.
func (c *MemoryCache) Clear(_ context.Context) {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.order = nil
	c.mu.Unlock()
}

// Len returns the number of stored entries, counting expired ones not
// yet collected.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns hit and miss counters.
func (c *MemoryCache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// Ping always succeeds for the in-memory backend.
func (c *MemoryCache) Ping(_ context.Context) error {
	return nil
}
