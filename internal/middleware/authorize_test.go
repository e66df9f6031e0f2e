// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegiv/studio-cms/internal/auth"
	"github.com/olegiv/studio-cms/internal/store"
)

func TestAuthorize(t *testing.T) {
	authorizer, err := auth.NewAuthorizer()
	if err != nil {
		t.Fatalf("NewAuthorizer: %v", err)
	}

	handler := Authorize(authorizer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		role       string
		method     string
		path       string
		wantStatus int
	}{
		{"no user", "", http.MethodGet, "/api/admin/blog/posts", http.StatusUnauthorized},
		{"editor manages posts", auth.RoleEditor, http.MethodPost, "/api/admin/blog/posts", http.StatusOK},
		{"editor renames project category", auth.RoleEditor, http.MethodPatch, "/api/admin/categories/3", http.StatusOK},
		{"editor cannot replace hero slider", auth.RoleEditor, http.MethodPut, "/api/admin/hero-slider", http.StatusForbidden},
		{"editor cannot list users", auth.RoleEditor, http.MethodGet, "/api/admin/users", http.StatusForbidden},
		{"editor cannot update settings", auth.RoleEditor, http.MethodPut, "/api/admin/settings", http.StatusForbidden},
		{"admin replaces hero slider", auth.RoleAdmin, http.MethodPut, "/api/admin/hero-slider", http.StatusOK},
		{"admin lists users", auth.RoleAdmin, http.MethodGet, "/api/admin/users", http.StatusOK},
		{"admin head on users", auth.RoleAdmin, http.MethodHead, "/api/admin/users", http.StatusOK},
		{"editor head on users", auth.RoleEditor, http.MethodHead, "/api/admin/users", http.StatusForbidden},
		{"unknown role", "viewer", http.MethodGet, "/api/admin/dashboard", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.role != "" {
				req = WithUser(req, store.User{ID: 1, Role: tt.role, IsActive: true}, AuthMethodSession)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
