// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mapinly/mapinly/internal/model"
)

const defaultBatchTimeout = 30 * time.Second

// Adapter wraps a Localizer with the platform degradation policy: a batch
// translation never fails. When the backend is missing, slow, or broken the
// caller gets the original texts back and the platform keeps serving source
// content.
type Adapter struct {
	localizer Localizer
	timeout   time.Duration
	log       *slog.Logger
}

// NewAdapter wraps localizer, which may be nil when translation is
// disabled.
func NewAdapter(localizer Localizer, timeout time.Duration, log *slog.Logger) *Adapter {
	if timeout <= 0 {
		timeout = defaultBatchTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{localizer: localizer, timeout: timeout, log: log}
}

// Enabled reports whether a translation backend is configured.
func (a *Adapter) Enabled() bool {
	return a.localizer != nil
}

// TranslateBatch translates texts from one locale to another, preserving
// order. Identical locales and blank texts are passed through untouched;
// any backend failure falls back to the original texts for the whole
// batch. The returned slice is always len(texts) and never shares memory
// with a backend response of the wrong shape.
func (a *Adapter) TranslateBatch(ctx context.Context, texts []string, from, to model.Locale) []string {
	out := make([]string, len(texts))
	copy(out, texts)

	if from == to || a.localizer == nil || len(texts) == 0 {
		return out
	}

	// Only non-blank texts go to the backend; blanks keep their position.
	indices := make([]int, 0, len(texts))
	batch := make([]string, 0, len(texts))
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			continue
		}
		indices = append(indices, i)
		batch = append(batch, t)
	}
	if len(batch) == 0 {
		return out
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	translated, err := a.localizer.Localize(ctx, batch, from, to)
	if err != nil {
		a.log.Warn("translation batch failed, serving source text",
			"from", from, "to", to, "texts", len(batch), "error", err)
		return out
	}
	if len(translated) != len(batch) {
		a.log.Warn("translation batch returned wrong count, serving source text",
			"from", from, "to", to, "got", len(translated), "want", len(batch))
		return out
	}

	for i, idx := range indices {
		out[idx] = translated[i]
	}
	return out
}
