// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"

	"github.com/mapinly/mapinly/internal/model"
)

// Source reports where a resolved field set came from.
type Source string

const (
	// SourceOriginal means the viewer reads the author's own locale.
	SourceOriginal Source = "original"
	// SourceTranslated means a stored translation was served.
	SourceTranslated Source = "translated"
	// SourceFallback means no translation existed and the source text
	// was served instead.
	SourceFallback Source = "fallback"
)

// Resolved is one entity's fields in the viewer's locale.
type Resolved struct {
	Fields FieldSet
	Source Source
}

// Resolver serves entity fields in the viewer's locale, falling back to
// the source text whenever a translation is missing or unreadable.
type Resolver struct {
	store Store
}

// NewResolver returns a Resolver over store.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the fields to show a viewer. When the viewer's locale
// matches the source locale the store is never consulted.
func (r *Resolver) Resolve(ctx context.Context, entityID int64, source model.Locale, fields FieldSet, viewer model.Locale) Resolved {
	if viewer == source {
		return Resolved{Fields: fields, Source: SourceOriginal}
	}
	if stored, ok := r.store.Get(ctx, entityID, viewer); ok {
		return Resolved{Fields: stored, Source: SourceTranslated}
	}
	return Resolved{Fields: fields, Source: SourceFallback}
}

// Item pairs an entity id with its source locale and fields for batch
// resolution.
type Item struct {
	EntityID int64
	Source   model.Locale
	Fields   FieldSet
}

// ResolveMany resolves a page of entities in one store round trip. Items
// whose source locale matches the viewer skip the lookup entirely; the
// rest share a single batched read.
func (r *Resolver) ResolveMany(ctx context.Context, items []Item, viewer model.Locale) []Resolved {
	out := make([]Resolved, len(items))

	lookup := make([]int64, 0, len(items))
	for i, it := range items {
		if it.Source == viewer {
			out[i] = Resolved{Fields: it.Fields, Source: SourceOriginal}
			continue
		}
		lookup = append(lookup, it.EntityID)
	}
	if len(lookup) == 0 {
		return out
	}

	stored := r.store.GetMany(ctx, lookup, viewer)
	for i, it := range items {
		if it.Source == viewer {
			continue
		}
		if fs, ok := stored[it.EntityID]; ok {
			out[i] = Resolved{Fields: fs, Source: SourceTranslated}
		} else {
			out[i] = Resolved{Fields: it.Fields, Source: SourceFallback}
		}
	}
	return out
}
