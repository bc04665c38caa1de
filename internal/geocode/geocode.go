// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geocode proxies venue lookups to a Nominatim-compatible search
// endpoint. Responses are cached aggressively since the upstream service
// is rate limited.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mapinly/mapinly/internal/cache"
)

const maxResults = 5

// Result is one geocoding candidate.
type Result struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type,omitempty"`
}

// Client queries the upstream geocoder through a cache.
type Client struct {
	endpoint  string
	userAgent string
	client    *http.Client
	cache     cache.Cache
	ttl       time.Duration
	log       *slog.Logger
}

// New creates a geocoding client.
func New(endpoint, userAgent string, c cache.Cache, ttl time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		endpoint:  endpoint,
		userAgent: userAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
		cache:     c,
		ttl:       ttl,
		log:       log,
	}
}

// Search returns candidates for a free-form venue query.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	key := "geocode:" + strings.ToLower(query)
	if data, ok := c.cache.Get(ctx, key); ok {
		var results []Result
		if err := json.Unmarshal(data, &results); err == nil {
			return results, nil
		}
		c.cache.Delete(ctx, key)
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("bad geocode endpoint: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", fmt.Sprintf("%d", maxResults))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create geocode request: %w", err)
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read geocode response: %w", err)
	}

	var results []Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	if encoded, err := json.Marshal(results); err == nil {
		c.cache.Set(ctx, key, encoded, c.ttl)
	}
	return results, nil
}
