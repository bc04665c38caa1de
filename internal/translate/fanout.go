// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"sync"

	"github.com/mapinly/mapinly/internal/model"
)

// FanOut translates fields into every supported locale other than the
// source and replaces the entity's stored translation set in one shot.
// Locale batches run concurrently; the store write waits for all of them
// so readers never see a half-written set. A backend failure for one
// locale stores the source text for that locale instead of failing the
// fan-out.
func FanOut(ctx context.Context, adapter *Adapter, store Store, entityID int64, source model.Locale, fields FieldSet) error {
	targets := model.TargetLocales(source)
	records := make([]Record, len(targets))
	texts := fields.Values()

	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target model.Locale) {
			defer wg.Done()
			translated := adapter.TranslateBatch(ctx, texts, source, target)
			records[i] = Record{
				EntityID: entityID,
				Locale:   target,
				Fields:   fields.WithValues(translated),
			}
		}(i, target)
	}
	wg.Wait()

	return store.ReplaceAll(ctx, entityID, records)
}
