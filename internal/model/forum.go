// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Forum represents a discussion forum, optionally attached to an event.
// Content fields mirror Event's three-field shape so both share the same
// translation fan-out.
type Forum struct {
	ID               int64         `json:"id"`
	Slug             string        `json:"slug"`
	Title            string        `json:"title"`
	Tagline          string        `json:"tagline"`
	ShortDescription string        `json:"short_description"`
	SourceLocale     Locale        `json:"source_locale"`
	EventID          sql.NullInt64 `json:"event_id,omitempty"`
	AuthorID         int64         `json:"author_id"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// ForumTranslation is a forum's content rendered in one non-source locale.
type ForumTranslation struct {
	ForumID          int64     `json:"forum_id"`
	Locale           Locale    `json:"locale"`
	Title            string    `json:"title"`
	Tagline          string    `json:"tagline"`
	ShortDescription string    `json:"short_description"`
	CreatedAt        time.Time `json:"created_at"`
}
