// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"

	"github.com/mapinly/mapinly/internal/model"
)

// Record is one stored translation: the fields of one entity in one locale.
type Record struct {
	EntityID int64
	Locale   model.Locale
	Fields   FieldSet
}

// Store persists derived translations for one entity kind.
//
// Reads degrade instead of failing: Get and GetMany report a missing
// translation (ok=false, or absence from the map) on storage errors so that
// callers fall back to the source text. Only ReplaceAll surfaces errors,
// and it must apply atomically so readers never observe a partially
// replaced translation set.
type Store interface {
	// Get returns the stored fields for one entity in one locale.
	Get(ctx context.Context, entityID int64, locale model.Locale) (FieldSet, bool)

	// GetMany returns stored fields for the given entities in one locale,
	// keyed by entity id. Entities without a stored translation are absent.
	GetMany(ctx context.Context, entityIDs []int64, locale model.Locale) map[int64]FieldSet

	// ReplaceAll atomically replaces every stored translation for the
	// entity with the given records.
	ReplaceAll(ctx context.Context, entityID int64, records []Record) error
}
