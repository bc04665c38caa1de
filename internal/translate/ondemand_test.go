// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mapinly/mapinly/internal/cache"
	"github.com/mapinly/mapinly/internal/model"
)

func TestOnDemandCachesResult(t *testing.T) {
	loc := tagLocalizer()
	od := NewOnDemand(NewAdapter(loc, time.Second, nil), cache.NewMemoryCache(100), time.Hour)

	ctx := context.Background()
	first := od.Translate(ctx, "hello", model.LocaleEN, model.LocaleDE)
	second := od.Translate(ctx, "hello", model.LocaleEN, model.LocaleDE)

	if first != "[de] hello" || second != first {
		t.Fatalf("got %q then %q", first, second)
	}
	if n := loc.calls.Load(); n != 1 {
		t.Fatalf("backend called %d times, want 1", n)
	}
}

func TestOnDemandDeduplicatesConcurrentRequests(t *testing.T) {
	release := make(chan struct{})
	loc := &fakeLocalizer{fn: func(texts []string, _, to model.Locale) ([]string, error) {
		<-release
		return []string{"[" + string(to) + "] " + texts[0]}, nil
	}}
	od := NewOnDemand(NewAdapter(loc, 10*time.Second, nil), cache.NewMemoryCache(100), time.Hour)

	const workers = 8
	results := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = od.Translate(context.Background(), "shared", model.LocaleEN, model.LocaleES)
		}(i)
	}

	// Let the goroutines pile up on the in-flight call before releasing
	// the backend.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, r := range results {
		if r != "[es] shared" {
			t.Fatalf("worker %d: got %q", i, r)
		}
	}
	if n := loc.calls.Load(); n != 1 {
		t.Fatalf("backend called %d times, want 1", n)
	}
}

func TestOnDemandSameLocaleAndBlank(t *testing.T) {
	loc := tagLocalizer()
	od := NewOnDemand(NewAdapter(loc, time.Second, nil), cache.NewMemoryCache(100), time.Hour)

	ctx := context.Background()
	if got := od.Translate(ctx, "hello", model.LocaleEN, model.LocaleEN); got != "hello" {
		t.Fatalf("same locale: got %q", got)
	}
	if got := od.Translate(ctx, "   ", model.LocaleEN, model.LocaleDE); got != "   " {
		t.Fatalf("blank: got %q", got)
	}
	if n := loc.calls.Load(); n != 0 {
		t.Fatalf("backend called %d times, want 0", n)
	}
}

func TestOnDemandCacheExpiry(t *testing.T) {
	loc := tagLocalizer()
	mem := cache.NewMemoryCache(100)
	now := time.Now()
	mem.SetClock(func() time.Time { return now })
	od := NewOnDemand(NewAdapter(loc, time.Second, nil), mem, time.Minute)

	ctx := context.Background()
	od.Translate(ctx, "hello", model.LocaleEN, model.LocaleIT)
	now = now.Add(2 * time.Minute)
	od.Translate(ctx, "hello", model.LocaleEN, model.LocaleIT)

	if n := loc.calls.Load(); n != 2 {
		t.Fatalf("backend called %d times, want 2 after expiry", n)
	}
}

func TestOnDemandCacheBounded(t *testing.T) {
	loc := tagLocalizer()
	mem := cache.NewMemoryCache(2)
	od := NewOnDemand(NewAdapter(loc, time.Second, nil), mem, time.Hour)

	ctx := context.Background()
	od.Translate(ctx, "one", model.LocaleEN, model.LocaleDE)
	od.Translate(ctx, "two", model.LocaleEN, model.LocaleDE)
	od.Translate(ctx, "three", model.LocaleEN, model.LocaleDE)

	if got := mem.Len(); got != 2 {
		t.Fatalf("cache holds %d entries, want 2", got)
	}

	// "one" was evicted first, so translating it again hits the backend.
	od.Translate(ctx, "one", model.LocaleEN, model.LocaleDE)
	if n := loc.calls.Load(); n != 4 {
		t.Fatalf("backend called %d times, want 4", n)
	}
}
