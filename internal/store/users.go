// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/mapinly/mapinly/internal/model"
)

const upsertUserBySubject = `
INSERT INTO users (oauth_subject, email, name, preferred_locale, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(oauth_subject) DO UPDATE SET
    email = excluded.email,
    name = excluded.name,
    updated_at = excluded.updated_at
RETURNING id, oauth_subject, email, name, preferred_locale, created_at, updated_at
`

// UpsertUserParams holds the identity claims supplied by the OAuth provider.
type UpsertUserParams struct {
	OAuthSubject    string
	Email           string
	Name            string
	PreferredLocale model.Locale
	Now             time.Time
}

// UpsertUserBySubject creates or refreshes the local shadow of an external
// identity, keyed by the provider's subject claim.
func (q *Queries) UpsertUserBySubject(ctx context.Context, arg UpsertUserParams) (model.User, error) {
	row := q.db.QueryRowContext(ctx, upsertUserBySubject,
		arg.OAuthSubject, arg.Email, arg.Name, arg.PreferredLocale, arg.Now, arg.Now)
	var u model.User
	err := row.Scan(&u.ID, &u.OAuthSubject, &u.Email, &u.Name, &u.PreferredLocale, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const getUserByID = `
SELECT id, oauth_subject, email, name, preferred_locale, created_at, updated_at
FROM users WHERE id = ?
`

// GetUserByID returns a user by primary key.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	row := q.db.QueryRowContext(ctx, getUserByID, id)
	var u model.User
	err := row.Scan(&u.ID, &u.OAuthSubject, &u.Email, &u.Name, &u.PreferredLocale, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const updateUserLocale = `
UPDATE users SET preferred_locale = ?, updated_at = ? WHERE id = ?
`

// UpdateUserLocale persists a user's preferred display locale.
func (q *Queries) UpdateUserLocale(ctx context.Context, id int64, locale model.Locale, now time.Time) error {
	_, err := q.db.ExecContext(ctx, updateUserLocale, locale, now, id)
	return err
}
