// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Comment is a forum post. It carries a single translatable content field.
type Comment struct {
	ID           int64     `json:"id"`
	ForumID      int64     `json:"forum_id"`
	AuthorID     int64     `json:"author_id"`
	Content      string    `json:"content"`
	SourceLocale Locale    `json:"source_locale"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CommentTranslation is a comment's content in one non-source locale.
type CommentTranslation struct {
	CommentID int64     `json:"comment_id"`
	Locale    Locale    `json:"locale"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
