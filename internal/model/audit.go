// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Audit levels
const (
	AuditLevelInfo    = "info"
	AuditLevelWarning = "warning"
	AuditLevelError   = "error"
)

// Audit categories
const (
	AuditCategoryAuth      = "auth"
	AuditCategoryEvent     = "event"
	AuditCategoryForum     = "forum"
	AuditCategoryTranslate = "translate"
	AuditCategorySystem    = "system"
)

// AuditEntry is a persisted operational log record. WARN and ERROR level
// slog records are mirrored here by the logging package.
type AuditEntry struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string // JSON string
	CreatedAt time.Time
}
