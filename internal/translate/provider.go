// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mapinly/mapinly/internal/model"
)

// Localizer produces machine translations for a batch of texts. A Localizer
// may fail; the Adapter wraps it with the degradation policy.
type Localizer interface {
	// Localize translates texts from one locale to another, returning the
	// translated texts in the same order. It returns an error when the
	// backend is unreachable or rejects the request.
	Localize(ctx context.Context, texts []string, from, to model.Locale) ([]string, error)
}

// HTTPLocalizerConfig configures the HTTP translation backend.
type HTTPLocalizerConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// HTTPLocalizer calls a LibreTranslate-compatible HTTP endpoint.
type HTTPLocalizer struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPLocalizer returns a Localizer backed by the configured endpoint.
func NewHTTPLocalizer(cfg HTTPLocalizerConfig) *HTTPLocalizer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPLocalizer{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type localizeRequest struct {
	Q      []string `json:"q"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Format string   `json:"format"`
	APIKey string   `json:"api_key,omitempty"`
}

type localizeResponse struct {
	TranslatedText []string `json:"translatedText"`
	Error          string   `json:"error,omitempty"`
}

// Localize sends one batched translation request.
func (l *HTTPLocalizer) Localize(ctx context.Context, texts []string, from, to model.Locale) ([]string, error) {
	body, err := json.Marshal(localizeRequest{
		Q:      texts,
		Source: string(from),
		Target: string(to),
		Format: "text",
		APIKey: l.apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal translation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create translation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("translation request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read translation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("translation backend returned %d: %s", resp.StatusCode, string(data))
	}

	var out localizeResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode translation response: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("translation backend: %s", out.Error)
	}
	if len(out.TranslatedText) != len(texts) {
		return nil, fmt.Errorf("translation backend returned %d texts, want %d", len(out.TranslatedText), len(texts))
	}
	return out.TranslatedText, nil
}
