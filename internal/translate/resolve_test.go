// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"testing"

	"github.com/mapinly/mapinly/internal/model"
)

func TestResolveSameLocaleSkipsStore(t *testing.T) {
	store := newMemStore()
	r := NewResolver(store)
	fields := FieldSet{{Name: "title", Value: "Hallo"}}

	got := r.Resolve(context.Background(), 1, model.LocaleDE, fields, model.LocaleDE)
	if got.Source != SourceOriginal {
		t.Fatalf("source = %s, want %s", got.Source, SourceOriginal)
	}
	if got.Fields[0].Value != "Hallo" {
		t.Fatalf("got %q, want source text", got.Fields[0].Value)
	}
	if store.gets != 0 {
		t.Fatalf("store consulted %d times, want 0", store.gets)
	}
}

func TestResolveServesStoredTranslation(t *testing.T) {
	store := newMemStore()
	store.data[1] = map[model.Locale]FieldSet{
		model.LocaleES: {{Name: "title", Value: "Hola"}},
	}
	r := NewResolver(store)
	fields := FieldSet{{Name: "title", Value: "Hello"}}

	got := r.Resolve(context.Background(), 1, model.LocaleEN, fields, model.LocaleES)
	if got.Source != SourceTranslated {
		t.Fatalf("source = %s, want %s", got.Source, SourceTranslated)
	}
	if got.Fields[0].Value != "Hola" {
		t.Fatalf("got %q, want stored translation", got.Fields[0].Value)
	}
}

func TestResolveFailsOpen(t *testing.T) {
	store := newMemStore()
	store.degraded = true
	r := NewResolver(store)
	fields := FieldSet{{Name: "title", Value: "Hello"}}

	got := r.Resolve(context.Background(), 1, model.LocaleEN, fields, model.LocaleZH)
	if got.Source != SourceFallback {
		t.Fatalf("source = %s, want %s", got.Source, SourceFallback)
	}
	if got.Fields[0].Value != "Hello" {
		t.Fatalf("got %q, want source text", got.Fields[0].Value)
	}
}

func TestResolveManyMixed(t *testing.T) {
	store := newMemStore()
	store.data[2] = map[model.Locale]FieldSet{
		model.LocaleFR: {{Name: "title", Value: "Bonjour"}},
	}
	r := NewResolver(store)

	items := []Item{
		{EntityID: 1, Source: model.LocaleFR, Fields: FieldSet{{Name: "title", Value: "Salut"}}},
		{EntityID: 2, Source: model.LocaleEN, Fields: FieldSet{{Name: "title", Value: "Hello"}}},
		{EntityID: 3, Source: model.LocaleEN, Fields: FieldSet{{Name: "title", Value: "Untranslated"}}},
	}
	got := r.ResolveMany(context.Background(), items, model.LocaleFR)

	if got[0].Source != SourceOriginal || got[0].Fields[0].Value != "Salut" {
		t.Fatalf("item 0: %+v, want original", got[0])
	}
	if got[1].Source != SourceTranslated || got[1].Fields[0].Value != "Bonjour" {
		t.Fatalf("item 1: %+v, want stored translation", got[1])
	}
	if got[2].Source != SourceFallback || got[2].Fields[0].Value != "Untranslated" {
		t.Fatalf("item 2: %+v, want fallback", got[2])
	}
	if store.gets != 1 {
		t.Fatalf("store consulted %d times, want 1 batched read", store.gets)
	}
}

func TestResolveManyAllSameLocaleSkipsStore(t *testing.T) {
	store := newMemStore()
	r := NewResolver(store)

	items := []Item{
		{EntityID: 1, Source: model.LocaleIT, Fields: FieldSet{{Name: "title", Value: "Ciao"}}},
		{EntityID: 2, Source: model.LocaleIT, Fields: FieldSet{{Name: "title", Value: "Mondo"}}},
	}
	got := r.ResolveMany(context.Background(), items, model.LocaleIT)
	for i, res := range got {
		if res.Source != SourceOriginal {
			t.Fatalf("item %d: source = %s, want %s", i, res.Source, SourceOriginal)
		}
	}
	if store.gets != 0 {
		t.Fatalf("store consulted %d times, want 0", store.gets)
	}
}
