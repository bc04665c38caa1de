// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/mapinly/mapinly/internal/model"
)

// CreateAuditEntryParams holds the fields for a new audit log row.
type CreateAuditEntryParams struct {
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string
	CreatedAt time.Time
}

const createAuditEntry = `
INSERT INTO audit_log (level, category, message, user_id, metadata, created_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, level, category, message, user_id, metadata, created_at
`

// CreateAuditEntry appends a row to the audit log.
func (q *Queries) CreateAuditEntry(ctx context.Context, arg CreateAuditEntryParams) (model.AuditEntry, error) {
	row := q.db.QueryRowContext(ctx, createAuditEntry,
		arg.Level, arg.Category, arg.Message, arg.UserID, arg.Metadata, arg.CreatedAt)
	var e model.AuditEntry
	err := row.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID, &e.Metadata, &e.CreatedAt)
	return e, err
}

const listAuditEntries = `
SELECT id, level, category, message, user_id, metadata, created_at
FROM audit_log
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?
`

// ListAuditEntries returns audit rows, newest first.
func (q *Queries) ListAuditEntries(ctx context.Context, limit, offset int64) ([]model.AuditEntry, error) {
	rows, err := q.db.QueryContext(ctx, listAuditEntries, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

const deleteOldAuditEntries = `DELETE FROM audit_log WHERE created_at < ?`

// DeleteOldAuditEntries removes audit rows older than the cutoff.
func (q *Queries) DeleteOldAuditEntries(ctx context.Context, cutoff time.Time) error {
	_, err := q.db.ExecContext(ctx, deleteOldAuditEntries, cutoff)
	return err
}
