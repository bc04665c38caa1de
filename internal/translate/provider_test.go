// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/mapinly/mapinly/internal/model"
)

func TestHTTPLocalizer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req localizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Source != "en" || req.Target != "es" || req.Format != "text" {
			t.Fatalf("unexpected request: %+v", req)
		}
		out := make([]string, len(req.Q))
		for i, q := range req.Q {
			out[i] = "es:" + q
		}
		json.NewEncoder(w).Encode(localizeResponse{TranslatedText: out})
	}))
	defer srv.Close()

	loc := NewHTTPLocalizer(HTTPLocalizerConfig{Endpoint: srv.URL, Timeout: time.Second})
	got, err := loc.Localize(context.Background(), []string{"hello", "world"}, model.LocaleEN, model.LocaleES)
	if err != nil {
		t.Fatalf("Localize: %v", err)
	}
	want := []string{"es:hello", "es:world"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestHTTPLocalizerErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	loc := NewHTTPLocalizer(HTTPLocalizerConfig{Endpoint: srv.URL, Timeout: time.Second})
	if _, err := loc.Localize(context.Background(), []string{"x"}, model.LocaleEN, model.LocaleDE); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestHTTPLocalizerShapeMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(localizeResponse{TranslatedText: []string{"just one"}})
	}))
	defer srv.Close()

	loc := NewHTTPLocalizer(HTTPLocalizerConfig{Endpoint: srv.URL, Timeout: time.Second})
	if _, err := loc.Localize(context.Background(), []string{"a", "b"}, model.LocaleEN, model.LocaleDE); err == nil {
		t.Fatal("expected error on shape mismatch")
	}
}
