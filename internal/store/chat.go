// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/mapinly/mapinly/internal/model"
)

const chatColumns = `id, event_id, author_id, client_id, content, source_locale, created_at`

func scanChatMessage(row interface{ Scan(...any) error }) (model.ChatMessage, error) {
	var m model.ChatMessage
	err := row.Scan(&m.ID, &m.EventID, &m.AuthorID, &m.ClientID, &m.Content,
		&m.SourceLocale, &m.CreatedAt)
	return m, err
}

// CreateChatMessageParams holds the fields for a new chat message.
type CreateChatMessageParams struct {
	EventID      int64
	AuthorID     int64
	ClientID     string
	Content      string
	SourceLocale model.Locale
	Now          time.Time
}

const createChatMessage = `
INSERT INTO chat_messages (event_id, author_id, client_id, content, source_locale, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(client_id) DO UPDATE SET client_id = excluded.client_id
RETURNING ` + chatColumns

// CreateChatMessage inserts a chat message. Reposting the same client_id
// returns the original row instead of duplicating the message.
func (q *Queries) CreateChatMessage(ctx context.Context, arg CreateChatMessageParams) (model.ChatMessage, error) {
	row := q.db.QueryRowContext(ctx, createChatMessage,
		arg.EventID, arg.AuthorID, arg.ClientID, arg.Content, arg.SourceLocale, arg.Now)
	return scanChatMessage(row)
}

// ListChatMessagesParams controls chat listing for one event.
type ListChatMessagesParams struct {
	EventID int64
	Limit   int64
	Offset  int64
}

const listChatMessages = `
SELECT ` + chatColumns + ` FROM chat_messages
WHERE event_id = ?
ORDER BY created_at ASC
LIMIT ? OFFSET ?
`

// ListChatMessages returns an event's chat messages in posting order.
func (q *Queries) ListChatMessages(ctx context.Context, arg ListChatMessagesParams) ([]model.ChatMessage, error) {
	rows, err := q.db.QueryContext(ctx, listChatMessages, arg.EventID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.ChatMessage
	for rows.Next() {
		m, err := scanChatMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

const deleteOldChatMessages = `DELETE FROM chat_messages WHERE created_at < ?`

// DeleteOldChatMessages removes chat messages older than the cutoff.
func (q *Queries) DeleteOldChatMessages(ctx context.Context, cutoff time.Time) error {
	_, err := q.db.ExecContext(ctx, deleteOldChatMessages, cutoff)
	return err
}
