// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types shared by the store, translation
// and handler layers.
package model

import "strings"

// Locale is a supported content locale code (ISO 639-1).
type Locale string

// The closed set of locales Mapinly serves content in.
const (
	LocaleEN Locale = "en"
	LocaleES Locale = "es"
	LocaleDE Locale = "de"
	LocaleFR Locale = "fr"
	LocaleIT Locale = "it"
	LocalePT Locale = "pt"
	LocaleZH Locale = "zh"
)

// DefaultLocale is used whenever a locale value is missing or invalid.
const DefaultLocale = LocaleEN

// SupportedLocales lists every locale in a stable order.
var SupportedLocales = []Locale{
	LocaleEN, LocaleES, LocaleDE, LocaleFR, LocaleIT, LocalePT, LocaleZH,
}

// IsSupportedLocale reports whether code names a supported locale.
// Matching is case-insensitive; region subtags (en-US) do not match.
func IsSupportedLocale(code string) bool {
	c := Locale(strings.ToLower(code))
	for _, l := range SupportedLocales {
		if l == c {
			return true
		}
	}
	return false
}

// NormalizeLocale maps an arbitrary string to a supported locale,
// falling back to DefaultLocale for anything outside the set.
func NormalizeLocale(code string) Locale {
	if IsSupportedLocale(code) {
		return Locale(strings.ToLower(code))
	}
	return DefaultLocale
}

// TargetLocales returns every supported locale except source, i.e. the
// set a write-time fan-out must produce translations for.
func TargetLocales(source Locale) []Locale {
	targets := make([]Locale, 0, len(SupportedLocales)-1)
	for _, l := range SupportedLocales {
		if l != source {
			targets = append(targets, l)
		}
	}
	return targets
}
