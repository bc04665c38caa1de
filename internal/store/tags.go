// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/mapinly/mapinly/internal/model"
)

const tagColumns = `id, name, slug, source_locale, created_at`

func scanTag(row interface{ Scan(...any) error }) (model.Tag, error) {
	var t model.Tag
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.SourceLocale, &t.CreatedAt)
	return t, err
}

// CreateTagParams holds the fields for a new tag.
type CreateTagParams struct {
	Name         string
	Slug         string
	SourceLocale model.Locale
	Now          time.Time
}

const createTag = `
INSERT INTO tags (name, slug, source_locale, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET name = excluded.name
RETURNING ` + tagColumns

// CreateTag inserts a tag, returning the existing row for duplicate names.
func (q *Queries) CreateTag(ctx context.Context, arg CreateTagParams) (model.Tag, error) {
	return scanTag(q.db.QueryRowContext(ctx, createTag, arg.Name, arg.Slug, arg.SourceLocale, arg.Now))
}

const listTags = `SELECT ` + tagColumns + ` FROM tags ORDER BY name ASC`

// ListTags returns all tags ordered by name.
func (q *Queries) ListTags(ctx context.Context) ([]model.Tag, error) {
	rows, err := q.db.QueryContext(ctx, listTags)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

const listEventTags = `
SELECT t.id, t.name, t.slug, t.source_locale, t.created_at
FROM tags t
JOIN event_tags et ON et.tag_id = t.id
WHERE et.event_id = ?
ORDER BY t.name ASC
`

// ListEventTags returns the tags attached to an event.
func (q *Queries) ListEventTags(ctx context.Context, eventID int64) ([]model.Tag, error) {
	rows, err := q.db.QueryContext(ctx, listEventTags, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

const attachTag = `INSERT OR IGNORE INTO event_tags (event_id, tag_id) VALUES (?, ?)`

// AttachTag links a tag to an event.
func (q *Queries) AttachTag(ctx context.Context, eventID, tagID int64) error {
	_, err := q.db.ExecContext(ctx, attachTag, eventID, tagID)
	return err
}

const detachTag = `DELETE FROM event_tags WHERE event_id = ? AND tag_id = ?`

// DetachTag unlinks a tag from an event.
func (q *Queries) DetachTag(ctx context.Context, eventID, tagID int64) error {
	_, err := q.db.ExecContext(ctx, detachTag, eventID, tagID)
	return err
}
