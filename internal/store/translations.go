// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mapinly/mapinly/internal/model"
	"github.com/mapinly/mapinly/internal/translate"
)

// translationTable describes the derived-translation table for one entity
// kind. Field order matches the column order and is preserved on reads.
type translationTable struct {
	table     string
	entityCol string
	fields    []string
}

var (
	eventTranslationsTable = translationTable{
		table:     "event_translations",
		entityCol: "event_id",
		fields:    []string{"title", "tagline", "short_description"},
	}
	forumTranslationsTable = translationTable{
		table:     "forum_translations",
		entityCol: "forum_id",
		fields:    []string{"title", "tagline", "short_description"},
	}
	commentTranslationsTable = translationTable{
		table:     "comment_translations",
		entityCol: "comment_id",
		fields:    []string{"content"},
	}
	chatMessageTranslationsTable = translationTable{
		table:     "chat_message_translations",
		entityCol: "message_id",
		fields:    []string{"content"},
	}
)

// TranslationStore implements translate.Store over one translation table.
// It holds the *sql.DB directly because ReplaceAll needs its own
// transaction.
type TranslationStore struct {
	db  *sql.DB
	tbl translationTable
}

// NewEventTranslationStore returns the translation store for events.
func NewEventTranslationStore(db *sql.DB) *TranslationStore {
	return &TranslationStore{db: db, tbl: eventTranslationsTable}
}

// NewForumTranslationStore returns the translation store for forums.
func NewForumTranslationStore(db *sql.DB) *TranslationStore {
	return &TranslationStore{db: db, tbl: forumTranslationsTable}
}

// NewCommentTranslationStore returns the translation store for comments.
func NewCommentTranslationStore(db *sql.DB) *TranslationStore {
	return &TranslationStore{db: db, tbl: commentTranslationsTable}
}

// NewChatMessageTranslationStore returns the translation store for chat
// messages.
func NewChatMessageTranslationStore(db *sql.DB) *TranslationStore {
	return &TranslationStore{db: db, tbl: chatMessageTranslationsTable}
}

// Get returns the stored translation for one entity in one locale. Any
// storage error is reported as a missing translation so callers fall back
// to the source text.
func (s *TranslationStore) Get(ctx context.Context, entityID int64, locale model.Locale) (translate.FieldSet, bool) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ? AND locale = ?`,
		strings.Join(s.tbl.fields, ", "), s.tbl.table, s.tbl.entityCol)

	vals := make([]string, len(s.tbl.fields))
	dest := make([]any, len(vals))
	for i := range vals {
		dest[i] = &vals[i]
	}
	if err := s.db.QueryRowContext(ctx, query, entityID, locale).Scan(dest...); err != nil {
		return nil, false
	}
	return s.fieldSet(vals), true
}

// GetMany returns stored translations for the given entities in one locale,
// keyed by entity id. Errors degrade to absence, per entity for scan errors
// and wholesale for query errors.
func (s *TranslationStore) GetMany(ctx context.Context, entityIDs []int64, locale model.Locale) map[int64]translate.FieldSet {
	out := make(map[int64]translate.FieldSet, len(entityIDs))
	if len(entityIDs) == 0 {
		return out
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(entityIDs)), ", ")
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s IN (%s) AND locale = ?`,
		s.tbl.entityCol, strings.Join(s.tbl.fields, ", "), s.tbl.table, s.tbl.entityCol, placeholders)

	args := make([]any, 0, len(entityIDs)+1)
	for _, id := range entityIDs {
		args = append(args, id)
	}
	args = append(args, locale)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return out
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		vals := make([]string, len(s.tbl.fields))
		dest := make([]any, 0, len(vals)+1)
		dest = append(dest, &id)
		for i := range vals {
			dest = append(dest, &vals[i])
		}
		if err := rows.Scan(dest...); err != nil {
			continue
		}
		out[id] = s.fieldSet(vals)
	}
	return out
}

// ReplaceAll replaces every stored translation for the entity in a single
// transaction, so readers see either the old set or the new set.
func (s *TranslationStore) ReplaceAll(ctx context.Context, entityID int64, records []translate.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace %s: %w", s.tbl.table, err)
	}
	defer tx.Rollback()

	del := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, s.tbl.table, s.tbl.entityCol)
	if _, err := tx.ExecContext(ctx, del, entityID); err != nil {
		return fmt.Errorf("clear %s: %w", s.tbl.table, err)
	}

	ins := fmt.Sprintf(`INSERT INTO %s (%s, locale, %s) VALUES (?, ?, %s)`,
		s.tbl.table, s.tbl.entityCol, strings.Join(s.tbl.fields, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(s.tbl.fields)), ", "))
	for _, rec := range records {
		if len(rec.Fields) != len(s.tbl.fields) {
			return fmt.Errorf("insert %s: got %d fields, want %d", s.tbl.table, len(rec.Fields), len(s.tbl.fields))
		}
		args := make([]any, 0, len(s.tbl.fields)+2)
		args = append(args, entityID, rec.Locale)
		for _, f := range rec.Fields {
			args = append(args, f.Value)
		}
		if _, err := tx.ExecContext(ctx, ins, args...); err != nil {
			return fmt.Errorf("insert %s: %w", s.tbl.table, err)
		}
	}
	return tx.Commit()
}

func (s *TranslationStore) fieldSet(vals []string) translate.FieldSet {
	fs := make(translate.FieldSet, len(vals))
	for i, name := range s.tbl.fields {
		fs[i] = translate.Field{Name: name, Value: vals[i]}
	}
	return fs
}
