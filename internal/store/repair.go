// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/mapinly/mapinly/internal/model"
)

// Queries that find content whose translation row count fell below the
// target locale count, usually after a ReplaceAll failed mid-flight. The
// repair job re-runs the fan-out for whatever these return.

const listEventsMissingTranslations = `
SELECT ` + eventColumns + ` FROM events e
WHERE (SELECT COUNT(*) FROM event_translations t WHERE t.event_id = e.id) < ?
ORDER BY e.id ASC
LIMIT ?`

// ListEventsMissingTranslations returns events with fewer than want
// translation rows.
func (q *Queries) ListEventsMissingTranslations(ctx context.Context, want, limit int64) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx, listEventsMissingTranslations, want, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

const listForumsMissingTranslations = `
SELECT ` + forumColumns + ` FROM forums f
WHERE (SELECT COUNT(*) FROM forum_translations t WHERE t.forum_id = f.id) < ?
ORDER BY f.id ASC
LIMIT ?`

// ListForumsMissingTranslations returns forums with fewer than want
// translation rows.
func (q *Queries) ListForumsMissingTranslations(ctx context.Context, want, limit int64) ([]model.Forum, error) {
	rows, err := q.db.QueryContext(ctx, listForumsMissingTranslations, want, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var forums []model.Forum
	for rows.Next() {
		f, err := scanForum(rows)
		if err != nil {
			return nil, err
		}
		forums = append(forums, f)
	}
	return forums, rows.Err()
}

const listCommentsMissingTranslations = `
SELECT ` + commentColumns + ` FROM comments c
WHERE (SELECT COUNT(*) FROM comment_translations t WHERE t.comment_id = c.id) < ?
ORDER BY c.id ASC
LIMIT ?`

// ListCommentsMissingTranslations returns comments with fewer than want
// translation rows.
func (q *Queries) ListCommentsMissingTranslations(ctx context.Context, want, limit int64) ([]model.Comment, error) {
	rows, err := q.db.QueryContext(ctx, listCommentsMissingTranslations, want, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

const listChatMessagesMissingTranslations = `
SELECT ` + chatColumns + ` FROM chat_messages m
WHERE (SELECT COUNT(*) FROM chat_message_translations t WHERE t.message_id = m.id) < ?
ORDER BY m.id ASC
LIMIT ?`

// ListChatMessagesMissingTranslations returns chat messages with fewer
// than want translation rows.
func (q *Queries) ListChatMessagesMissingTranslations(ctx context.Context, want, limit int64) ([]model.ChatMessage, error) {
	rows, err := q.db.QueryContext(ctx, listChatMessagesMissingTranslations, want, limit)
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
