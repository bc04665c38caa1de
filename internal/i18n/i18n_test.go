// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"testing"

	"github.com/mapinly/mapinly/internal/model"
)

func TestTranslation(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if got := T("de", "nav.events"); got != "Veranstaltungen" {
		t.Errorf("T(de, nav.events) = %q", got)
	}
	if got := T("zh", "nav.forums"); got != "论坛" {
		t.Errorf("T(zh, nav.forums) = %q", got)
	}
	// Unknown key falls back to the key itself.
	if got := T("fr", "no.such.key"); got != "no.such.key" {
		t.Errorf("T(fr, no.such.key) = %q", got)
	}
	// Unknown language falls back to the default.
	if got := T("xx", "nav.events"); got != "Events" {
		t.Errorf("T(xx, nav.events) = %q", got)
	}
	// Formatting arguments.
	if got := T("en", "content.machine_translated", "es"); got != "Machine translated from es" {
		t.Errorf("formatted = %q", got)
	}
}

func TestMatchLanguage(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}

	cases := []struct {
		accept string
		want   model.Locale
	}{
		{"de-DE,de;q=0.9,en;q=0.8", model.LocaleDE},
		{"pt-BR", model.LocalePT},
		{"zh-CN,zh;q=0.9", model.LocaleZH},
		{"ja", model.DefaultLocale},
		{"", model.DefaultLocale},
	}
	for _, tc := range cases {
		if got := MatchLanguage(tc.accept); got != tc.want {
			t.Errorf("MatchLanguage(%q) = %s, want %s", tc.accept, got, tc.want)
		}
	}
}
