// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"
)

// Geocode proxies a venue search to the upstream geocoder through the cache.
func (h *Handler) Geocode(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		WriteBadRequest(w, "Query parameter q is required")
		return
	}
	if h.geocoder == nil {
		WriteError(w, http.StatusServiceUnavailable, "unavailable", "Geocoding is not configured", nil)
		return
	}

	results, err := h.geocoder.Search(r.Context(), query)
	if err != nil {
		h.log.Error("geocode lookup failed", "query", query, "error", err)
		WriteError(w, http.StatusBadGateway, "upstream_error", "Geocoding lookup failed", nil)
		return
	}
	WriteSuccess(w, results, nil)
}
