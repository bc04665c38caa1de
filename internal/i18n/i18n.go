// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides static UI string translation for the supported
// locales. User content translation lives in the translate package; this
// package only covers interface chrome such as labels and error messages.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/language"

	"github.com/mapinly/mapinly/internal/model"
)

//go:embed locales
var localesFS embed.FS

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Catalog holds all UI translations for all supported locales.
type Catalog struct {
	mu           sync.RWMutex
	translations map[string]map[string]string // lang -> key -> translation
	matcher      language.Matcher
	supported    []language.Tag
	defaultLang  string
	logger       *slog.Logger
}

// catalog is the global catalog instance.
var catalog *Catalog

// Init loads the embedded message files for every supported locale.
func Init(logger *slog.Logger) error {
	catalog = &Catalog{
		translations: make(map[string]map[string]string),
		defaultLang:  string(model.DefaultLocale),
		logger:       logger,
	}

	tags := make([]language.Tag, 0, len(model.SupportedLocales))
	for _, loc := range model.SupportedLocales {
		tags = append(tags, language.MustParse(string(loc)))
	}
	catalog.supported = tags
	catalog.matcher = language.NewMatcher(tags)

	for _, loc := range model.SupportedLocales {
		if err := catalog.loadLanguage(string(loc)); err != nil {
			return fmt.Errorf("failed to load language %s: %w", loc, err)
		}
	}

	if logger != nil {
		logger.Info("i18n initialized", "languages", len(model.SupportedLocales))
	}
	return nil
}

// loadLanguage loads translations for a specific language.
func (c *Catalog) loadLanguage(lang string) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.translations[lang] = make(map[string]string)
	for _, msg := range msgFile.Messages {
		c.translations[lang][msg.ID] = msg.Translation
	}
	return nil
}

// T translates a message key to the specified language. Unknown keys fall
// back to the default language, then to the key itself. Supports optional
// arguments for string formatting.
func T(lang, key string, args ...any) string {
	if catalog == nil {
		return key
	}

	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	langTranslations, ok := catalog.translations[lang]
	if !ok {
		langTranslations, ok = catalog.translations[catalog.defaultLang]
		if !ok {
			return key
		}
	}

	translation, ok := langTranslations[key]
	if !ok {
		if lang != catalog.defaultLang {
			if defaults, ok := catalog.translations[catalog.defaultLang]; ok {
				if translation, ok = defaults[key]; ok {
					if len(args) > 0 {
						return fmt.Sprintf(translation, args...)
					}
					return translation
				}
			}
		}
		return key
	}

	if len(args) > 0 {
		return fmt.Sprintf(translation, args...)
	}
	return translation
}

// MatchLanguage finds the best supported locale for an Accept-Language
// header or single language code.
func MatchLanguage(acceptLang string) model.Locale {
	if catalog == nil {
		return model.DefaultLocale
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return model.DefaultLocale
		}
		tags = []language.Tag{tag}
	}

	_, idx, _ := catalog.matcher.Match(tags...)
	if idx >= 0 && idx < len(model.SupportedLocales) {
		return model.SupportedLocales[idx]
	}
	return model.DefaultLocale
}
