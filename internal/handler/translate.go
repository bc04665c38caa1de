// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mapinly/mapinly/internal/middleware"
	"github.com/mapinly/mapinly/internal/model"
)

// Translation size limit for ad-hoc requests.
const maxTranslateChars = 5000

// translateRequest is the JSON body for an ad-hoc translation.
type translateRequest struct {
	Text         string `json:"text"`
	SourceLocale string `json:"source_locale"`
}

// translateResponse carries the text rendered in the viewer's locale.
// Text equals the input when translation is disabled or fails.
type translateResponse struct {
	Text         string `json:"text"`
	SourceLocale string `json:"source_locale"`
	TargetLocale string `json:"target_locale"`
}

// Translate renders arbitrary text into the viewer's locale through the
// cached on-demand translator.
func (h *Handler) Translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		WriteValidationError(w, map[string]string{"text": "Text is required"})
		return
	}
	if len(req.Text) > maxTranslateChars {
		WriteValidationError(w, map[string]string{"text": "Text is too long"})
		return
	}

	from := model.NormalizeLocale(req.SourceLocale)
	to := middleware.GetLocale(r)

	text := req.Text
	if h.onDemand != nil {
		text = h.onDemand.Translate(r.Context(), req.Text, from, to)
	}
	WriteSuccess(w, translateResponse{
		Text:         text,
		SourceLocale: string(from),
		TargetLocale: string(to),
	}, nil)
}
