// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/mapinly/mapinly/internal/model"
)

const commentColumns = `id, forum_id, author_id, content, source_locale, created_at, updated_at`

func scanComment(row interface{ Scan(...any) error }) (model.Comment, error) {
	var c model.Comment
	err := row.Scan(&c.ID, &c.ForumID, &c.AuthorID, &c.Content, &c.SourceLocale,
		&c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// CreateCommentParams holds the fields for a new comment row.
type CreateCommentParams struct {
	ForumID      int64
	AuthorID     int64
	Content      string
	SourceLocale model.Locale
	Now          time.Time
}

const createComment = `
INSERT INTO comments (forum_id, author_id, content, source_locale, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + commentColumns

// CreateComment inserts a new comment and returns the stored row.
func (q *Queries) CreateComment(ctx context.Context, arg CreateCommentParams) (model.Comment, error) {
	row := q.db.QueryRowContext(ctx, createComment,
		arg.ForumID, arg.AuthorID, arg.Content, arg.SourceLocale, arg.Now, arg.Now)
	return scanComment(row)
}

const getCommentByID = `SELECT ` + commentColumns + ` FROM comments WHERE id = ?`

// GetCommentByID returns the comment with the given id.
func (q *Queries) GetCommentByID(ctx context.Context, id int64) (model.Comment, error) {
	return scanComment(q.db.QueryRowContext(ctx, getCommentByID, id))
}

// ListCommentsParams controls comment listing for one forum.
type ListCommentsParams struct {
	ForumID int64
	Limit   int64
	Offset  int64
}

const listComments = `
SELECT ` + commentColumns + ` FROM comments
WHERE forum_id = ?
ORDER BY created_at ASC
LIMIT ? OFFSET ?
`

// ListComments returns a forum's comments in posting order.
func (q *Queries) ListComments(ctx context.Context, arg ListCommentsParams) ([]model.Comment, error) {
	rows, err := q.db.QueryContext(ctx, listComments, arg.ForumID, arg.Limit, arg.Offset)
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

const countComments = `SELECT COUNT(*) FROM comments WHERE forum_id = ?`

// CountComments returns the number of comments in a forum.
func (q *Queries) CountComments(ctx context.Context, forumID int64) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countComments, forumID).Scan(&n)
	return n, err
}

const deleteComment = `DELETE FROM comments WHERE id = ?`

// DeleteComment removes a comment; its translations cascade.
func (q *Queries) DeleteComment(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteComment, id)
	return err
}
