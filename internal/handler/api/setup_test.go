// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/studio-cms/internal/auth"
	"github.com/olegiv/studio-cms/internal/middleware"
	"github.com/olegiv/studio-cms/internal/service"
	"github.com/olegiv/studio-cms/internal/session"
	"github.com/olegiv/studio-cms/internal/store"
	"github.com/olegiv/studio-cms/internal/testutil"
	"github.com/olegiv/studio-cms/internal/version"
)

const (
	testTokenSecret = "test-token-secret-with-enough-length"
	testPassword    = "correct-horse-battery"
)

// testSetup creates a migrated database and a handler with sessions,
// tokens and login protection wired in. No cache is configured.
func testSetup(t *testing.T) (*sql.DB, *Handler) {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	lp := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	t.Cleanup(lp.Stop)

	h := NewHandler(Config{
		DB:              db,
		Sessions:        session.New(db, true),
		Tokens:          auth.NewTokenIssuer(testTokenSecret, time.Hour),
		LoginProtection: lp,
		Version:         version.Info{Version: "test"},
	})
	return db, h
}

// createTestUser creates an active user whose password is testPassword.
func createTestUser(t *testing.T, h *Handler, email, role string) store.User {
	t.Helper()
	u, err := h.users.CreateUser(context.Background(), service.UserInput{
		Email:    email,
		Name:     "Test " + role,
		Role:     role,
		IsActive: true,
		Password: testPassword,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", email, err)
	}
	return u
}

// asUser attaches user to the request as the auth middleware would.
func asUser(r *http.Request, user store.User) *http.Request {
	return middleware.WithUser(r, user, middleware.AuthMethodSession)
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// newJSONRequest creates an HTTP request with JSON body and optional URL params.
func newJSONRequest(t *testing.T, method, path string, body string, params map[string]string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if len(params) > 0 {
		req = requestWithURLParams(req, params)
	}
	return req
}

// newRequest creates a body-less HTTP request with optional URL params.
func newRequest(t *testing.T, method, path string, params map[string]string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if len(params) > 0 {
		req = requestWithURLParams(req, params)
	}
	return req
}

// dataResponse is a generic wrapper for API responses with a "data" field.
type dataResponse[T any] struct {
	Data T `json:"data"`
}

// listResponse is a generic wrapper for API list responses with data and meta.
type listResponse[T any] struct {
	Data []T   `json:"data"`
	Meta *Meta `json:"meta"`
}

// unmarshalData unmarshals a JSON response body into the specified type.
func unmarshalData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var resp dataResponse[T]
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v (body %s)", err, w.Body.String())
	}
	return resp.Data
}

// unmarshalList unmarshals a JSON list response body into the specified type.
func unmarshalList[T any](t *testing.T, w *httptest.ResponseRecorder) ([]T, *Meta) {
	t.Helper()
	var resp listResponse[T]
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v (body %s)", err, w.Body.String())
	}
	return resp.Data, resp.Meta
}

// unmarshalError decodes a JSON error body.
func unmarshalError(t *testing.T, w *httptest.ResponseRecorder) middleware.APIError {
	t.Helper()
	var resp middleware.APIError
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal error: %v (body %s)", err, w.Body.String())
	}
	return resp
}

// decodeBody decodes a response that is not wrapped in "data".
func decodeBody(w *httptest.ResponseRecorder, v any) error {
	return json.Unmarshal(w.Body.Bytes(), v)
}

// executeHandler executes a handler and returns the response recorder.
func executeHandler(t *testing.T, handler func(http.ResponseWriter, *http.Request), req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

// eventFilter selects the first page of events in category.
func eventFilter(category string) service.EventFilter {
	return service.EventFilter{Category: category, Pagination: service.Pagination{Page: 1, PerPage: 50}}
}

// assertStatus fails the test when the recorder holds another status.
func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, want, w.Body.String())
	}
}
