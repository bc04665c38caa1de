// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the JSON API handlers.
package handler

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/mapinly/mapinly/internal/geocode"
	"github.com/mapinly/mapinly/internal/i18n"
	"github.com/mapinly/mapinly/internal/middleware"
	"github.com/mapinly/mapinly/internal/model"
	"github.com/mapinly/mapinly/internal/service"
	"github.com/mapinly/mapinly/internal/store"
	"github.com/mapinly/mapinly/internal/translate"
	"github.com/mapinly/mapinly/internal/version"
)

// Pagination bounds.
const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db       *sql.DB
	queries  *store.Queries
	events   *service.EventService
	forums   *service.ForumService
	chat     *service.ChatService
	onDemand *translate.OnDemand
	geocoder *geocode.Client
	sessions *scs.SessionManager
	log      *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, events *service.EventService, forums *service.ForumService,
	chat *service.ChatService, onDemand *translate.OnDemand, geocoder *geocode.Client,
	sessions *scs.SessionManager, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		db:       db,
		queries:  store.New(db),
		events:   events,
		forums:   forums,
		chat:     chat,
		onDemand: onDemand,
		geocoder: geocoder,
		sessions: sessions,
		log:      log,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination metadata.
type Meta struct {
	Total   int64 `json:"total,omitempty"`
	Page    int   `json:"page,omitempty"`
	PerPage int   `json:"per_page,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: ErrorDetail{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, nil)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteForbidden writes a 403 Forbidden response.
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, "forbidden", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", "Validation failed", fieldErrors)
}

// parsePagination reads ?page and ?per_page with sane bounds.
func parsePagination(r *http.Request) (limit, offset int64, page, perPage int) {
	page = 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	perPage = defaultPerPage
	if v, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && v > 0 {
		perPage = v
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return int64(perPage), int64((page - 1) * perPage), page, perPage
}

// parseIDParam parses the {id} chi URL parameter.
func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// translationNotice returns the localized attribution line shown next to
// machine translated content. Original and fallback text carry no notice.
func translationNotice(r *http.Request, source translate.Source, from model.Locale) string {
	if source != translate.SourceTranslated {
		return ""
	}
	return i18n.T(string(middleware.GetLocale(r)), "content.machine_translated", from)
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Status returns the API status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{Status: "ok", Version: version.Version}, nil)
}

// Healthz reports process and database liveness.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		h.log.Error("health check failed", "error", err)
		WriteError(w, http.StatusServiceUnavailable, "unavailable", "database unreachable", nil)
		return
	}
	WriteSuccess(w, map[string]string{"status": "ok"}, nil)
}
