// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(10)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), 0)
	got, ok := c.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatal("missing key reported present")
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Fatalf("stats = %+v, want 1 hit 1 miss", stats)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(10)
	now := time.Now()
	c.SetClock(func() time.Time { return now })
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)
	if _, ok := c.Get(ctx, "k"); !ok {
		t.Fatal("fresh entry missing")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expired entry still served")
	}
}

func TestMemoryCacheEvictsOldestFirst(t *testing.T) {
	c := NewMemoryCache(2)
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"), 0)
	c.Set(ctx, "b", []byte("2"), 0)
	c.Set(ctx, "c", []byte("3"), 0)

	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
	if _, ok := c.Get(ctx, "a"); ok {
		t.Fatal("oldest entry survived eviction")
	}
	for _, k := range []string{"b", "c"} {
		if _, ok := c.Get(ctx, k); !ok {
			t.Fatalf("key %q evicted out of order", k)
		}
	}
}

func TestMemoryCacheOverwriteDoesNotEvict(t *testing.T) {
	c := NewMemoryCache(2)
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"), 0)
	c.Set(ctx, "b", []byte("2"), 0)
	c.Set(ctx, "a", []byte("updated"), 0)

	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
	got, ok := c.Get(ctx, "a")
	if !ok || string(got) != "updated" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
}

func TestMemoryCacheDeleteByPrefix(t *testing.T) {
	c := NewMemoryCache(10)
	ctx := context.Background()

	c.Set(ctx, "geo:berlin", []byte("1"), 0)
	c.Set(ctx, "geo:paris", []byte("2"), 0)
	c.Set(ctx, "other", []byte("3"), 0)

	c.DeleteByPrefix(ctx, "geo:")
	if _, ok := c.Get(ctx, "geo:berlin"); ok {
		t.Fatal("prefixed key survived")
	}
	if _, ok := c.Get(ctx, "other"); !ok {
		t.Fatal("unrelated key deleted")
	}
}

func TestMemoryCacheClear(t *testing.T) {
	c := NewMemoryCache(10)
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"), 0)
	c.Clear(ctx)
	if c.Len() != 0 {
		t.Fatalf("len = %d after clear", c.Len())
	}
}
