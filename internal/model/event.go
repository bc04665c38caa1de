// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Event represents a community event. Title, tagline and short description
// are stored in the locale the author wrote them in (SourceLocale); derived
// translations live in event_translations and are never edited directly.
type Event struct {
	ID               int64           `json:"id"`
	Slug             string          `json:"slug"`
	Title            string          `json:"title"`
	Tagline          string          `json:"tagline"`
	ShortDescription string          `json:"short_description"`
	SourceLocale     Locale          `json:"source_locale"`
	AuthorID         int64           `json:"author_id"`
	StartsAt         time.Time       `json:"starts_at"`
	EndsAt           sql.NullTime    `json:"ends_at,omitempty"`
	Venue            string          `json:"venue,omitempty"`
	Latitude         sql.NullFloat64 `json:"latitude,omitempty"`
	Longitude        sql.NullFloat64 `json:"longitude,omitempty"`
	Capacity         int64           `json:"capacity"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// IsUpcoming returns true if the event has not started yet.
func (e *Event) IsUpcoming(now time.Time) bool {
	return e.StartsAt.After(now)
}

// HasCapacityLimit returns true if registrations are capped.
func (e *Event) HasCapacityLimit() bool {
	return e.Capacity > 0
}

// EventTranslation is the derived rendering of an event's content fields in
// one non-source locale. At most one row exists per (event, locale).
type EventTranslation struct {
	EventID          int64     `json:"event_id"`
	Locale           Locale    `json:"locale"`
	Title            string    `json:"title"`
	Tagline          string    `json:"tagline"`
	ShortDescription string    `json:"short_description"`
	CreatedAt        time.Time `json:"created_at"`
}
