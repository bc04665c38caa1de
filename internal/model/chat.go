// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// ChatMessage is a single message in an event's chat. ClientID is a
// caller-supplied UUID used for idempotent posting from flaky connections.
type ChatMessage struct {
	ID           int64     `json:"id"`
	EventID      int64     `json:"event_id"`
	AuthorID     int64     `json:"author_id"`
	ClientID     string    `json:"client_id"`
	Content      string    `json:"content"`
	SourceLocale Locale    `json:"source_locale"`
	CreatedAt    time.Time `json:"created_at"`
}

// ChatMessageTranslation is a chat message's content in one non-source locale.
type ChatMessageTranslation struct {
	MessageID int64     `json:"message_id"`
	Locale    Locale    `json:"locale"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
