// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides a byte-oriented cache behind a common interface
// with in-memory and Redis backends.
package cache

import (
	"context"
	"time"
)

// Stats holds cache hit and miss counters.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// Cache is the backend-independent cache contract. Values are opaque
// bytes; callers serialize their own types.
type Cache interface {
	// Get returns the value for key, or ok=false when absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key for ttl. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)

	// Delete removes key.
	Delete(ctx context.Context, key string)

	// DeleteByPrefix removes every key with the given prefix.
	DeleteByPrefix(ctx context.Context, prefix string)

	// Clear removes every key.
	Clear(ctx context.Context)

	// Stats returns hit and miss counters.
	Stats() Stats

	// Ping reports backend reachability.
	Ping(ctx context.Context) error
}
