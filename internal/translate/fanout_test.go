// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mapinly/mapinly/internal/model"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	mu       sync.Mutex
	data     map[int64]map[model.Locale]FieldSet
	gets     int
	degraded bool
}

func newMemStore() *memStore {
	return &memStore{data: make(map[int64]map[model.Locale]FieldSet)}
}

func (s *memStore) Get(_ context.Context, entityID int64, locale model.Locale) (FieldSet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.degraded {
		return nil, false
	}
	fs, ok := s.data[entityID][locale]
	return fs, ok
}

func (s *memStore) GetMany(_ context.Context, entityIDs []int64, locale model.Locale) map[int64]FieldSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	out := make(map[int64]FieldSet)
	if s.degraded {
		return out
	}
	for _, id := range entityIDs {
		if fs, ok := s.data[id][locale]; ok {
			out[id] = fs
		}
	}
	return out
}

func (s *memStore) ReplaceAll(_ context.Context, entityID int64, records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byLocale := make(map[model.Locale]FieldSet, len(records))
	for _, rec := range records {
		byLocale[rec.Locale] = rec.Fields
	}
	s.data[entityID] = byLocale
	return nil
}

func TestFanOutCoversAllTargetLocales(t *testing.T) {
	store := newMemStore()
	a := NewAdapter(tagLocalizer(), time.Second, nil)
	fields := FieldSet{
		{Name: "title", Value: "Summer Picnic"},
		{Name: "tagline", Value: "Food and games"},
	}

	if err := FanOut(context.Background(), a, store, 7, model.LocaleEN, fields); err != nil {
		t.Fatalf("FanOut: %v", err)
	}

	stored := store.data[7]
	targets := model.TargetLocales(model.LocaleEN)
	if len(stored) != len(targets) {
		t.Fatalf("stored %d locales, want %d", len(stored), len(targets))
	}
	if _, ok := stored[model.LocaleEN]; ok {
		t.Fatal("source locale must not be stored")
	}
	de := stored[model.LocaleDE]
	if de[0].Value != "[de] Summer Picnic" || de[1].Value != "[de] Food and games" {
		t.Fatalf("unexpected de fields: %+v", de)
	}
}

func TestFanOutBackendErrorStoresSourceText(t *testing.T) {
	store := newMemStore()
	loc := &fakeLocalizer{fn: func([]string, model.Locale, model.Locale) ([]string, error) {
		return nil, errors.New("backend down")
	}}
	a := NewAdapter(loc, time.Second, nil)
	fields := FieldSet{{Name: "content", Value: "bonjour"}}

	if err := FanOut(context.Background(), a, store, 3, model.LocaleFR, fields); err != nil {
		t.Fatalf("FanOut: %v", err)
	}

	for _, target := range model.TargetLocales(model.LocaleFR) {
		fs, ok := store.data[3][target]
		if !ok {
			t.Fatalf("locale %s missing", target)
		}
		if fs[0].Value != "bonjour" {
			t.Fatalf("locale %s: got %q, want source text", target, fs[0].Value)
		}
	}
}

func TestFanOutReplacesPreviousTranslations(t *testing.T) {
	store := newMemStore()
	a := NewAdapter(tagLocalizer(), time.Second, nil)

	v1 := FieldSet{{Name: "title", Value: "v1"}}
	if err := FanOut(context.Background(), a, store, 1, model.LocaleEN, v1); err != nil {
		t.Fatalf("FanOut v1: %v", err)
	}
	v2 := FieldSet{{Name: "title", Value: "v2"}}
	if err := FanOut(context.Background(), a, store, 1, model.LocaleEN, v2); err != nil {
		t.Fatalf("FanOut v2: %v", err)
	}

	for _, target := range model.TargetLocales(model.LocaleEN) {
		fs := store.data[1][target]
		if want := "[" + string(target) + "] v2"; fs[0].Value != want {
			t.Fatalf("locale %s: got %q, want %q", target, fs[0].Value, want)
		}
	}
}
