// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"strings"

	"github.com/google/uuid"
)

// ConfirmationCode returns a short uppercase code suitable for showing to
// an attendee at the door.
func ConfirmationCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:10])
}
