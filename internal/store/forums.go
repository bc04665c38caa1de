// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/mapinly/mapinly/internal/model"
)

const forumColumns = `id, slug, title, tagline, short_description, source_locale,
event_id, author_id, created_at, updated_at`

func scanForum(row interface{ Scan(...any) error }) (model.Forum, error) {
	var f model.Forum
	err := row.Scan(&f.ID, &f.Slug, &f.Title, &f.Tagline, &f.ShortDescription,
		&f.SourceLocale, &f.EventID, &f.AuthorID, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

// CreateForumParams holds the fields for a new forum row.
type CreateForumParams struct {
	Slug             string
	Title            string
	Tagline          string
	ShortDescription string
	SourceLocale     model.Locale
	EventID          sql.NullInt64
	AuthorID         int64
	Now              time.Time
}

const createForum = `
INSERT INTO forums (slug, title, tagline, short_description, source_locale,
    event_id, author_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + forumColumns

// CreateForum inserts a new forum and returns the stored row.
func (q *Queries) CreateForum(ctx context.Context, arg CreateForumParams) (model.Forum, error) {
	row := q.db.QueryRowContext(ctx, createForum,
		arg.Slug, arg.Title, arg.Tagline, arg.ShortDescription, arg.SourceLocale,
		arg.EventID, arg.AuthorID, arg.Now, arg.Now)
	return scanForum(row)
}

// UpdateForumParams holds the mutable fields of a forum.
type UpdateForumParams struct {
	ID               int64
	Title            string
	Tagline          string
	ShortDescription string
	SourceLocale     model.Locale
	Now              time.Time
}

const updateForum = `
UPDATE forums SET title = ?, tagline = ?, short_description = ?, source_locale = ?, updated_at = ?
WHERE id = ?
RETURNING ` + forumColumns

// UpdateForum rewrites a forum's content fields.
func (q *Queries) UpdateForum(ctx context.Context, arg UpdateForumParams) (model.Forum, error) {
	row := q.db.QueryRowContext(ctx, updateForum,
		arg.Title, arg.Tagline, arg.ShortDescription, arg.SourceLocale, arg.Now, arg.ID)
	return scanForum(row)
}

const getForumBySlug = `SELECT ` + forumColumns + ` FROM forums WHERE slug = ?`

// GetForumBySlug returns the forum with the given slug.
func (q *Queries) GetForumBySlug(ctx context.Context, slug string) (model.Forum, error) {
	return scanForum(q.db.QueryRowContext(ctx, getForumBySlug, slug))
}

const getForumByID = `SELECT ` + forumColumns + ` FROM forums WHERE id = ?`

// GetForumByID returns the forum with the given id.
func (q *Queries) GetForumByID(ctx context.Context, id int64) (model.Forum, error) {
	return scanForum(q.db.QueryRowContext(ctx, getForumByID, id))
}

// ListForumsParams controls forum listing.
type ListForumsParams struct {
	Limit  int64
	Offset int64
}

const listForums = `
SELECT ` + forumColumns + ` FROM forums
ORDER BY created_at DESC
LIMIT ? OFFSET ?
`

// ListForums returns forums, newest first.
func (q *Queries) ListForums(ctx context.Context, arg ListForumsParams) ([]model.Forum, error) {
	rows, err := q.db.QueryContext(ctx, listForums, arg.Limit, arg.Offset)
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

const countForums = `SELECT COUNT(*) FROM forums`

// CountForums returns the total number of forums.
func (q *Queries) CountForums(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countForums).Scan(&n)
	return n, err
}

const deleteForum = `DELETE FROM forums WHERE id = ?`

// DeleteForum removes a forum; its comments and their translations cascade.
func (q *Queries) DeleteForum(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteForum, id)
	return err
}

const forumSlugExists = `SELECT EXISTS(SELECT 1 FROM forums WHERE slug = ?)`

// ForumSlugExists reports whether a slug is already taken.
func (q *Queries) ForumSlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, forumSlugExists, slug).Scan(&exists)
	return exists, err
}
