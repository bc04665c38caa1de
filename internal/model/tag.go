// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Tag is a short label attached to events. Tags are short and mutable
// enough that translations are computed lazily on render via the on-demand
// translator, not fanned out at write time.
type Tag struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	SourceLocale Locale    `json:"source_locale"`
	CreatedAt    time.Time `json:"created_at"`
}
