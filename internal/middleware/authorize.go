// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/studio-cms/internal/auth"
)

// Authorize checks the context user's role against the RBAC policy for the
// request path and method. It must run after RequireUser.
func Authorize(authorizer *auth.Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				WriteAPIError(w, http.StatusUnauthorized, CodeUnauthorized, "Authentication required", nil)
				return
			}

			allowed, err := authorizer.Allowed(user.Role, r.URL.Path, r.Method)
			if err != nil {
				slog.Error("failed to evaluate access policy", "error", err, "path", r.URL.Path)
				WriteAPIError(w, http.StatusInternalServerError, CodeInternal, "Internal server error", nil)
				return
			}

			if !allowed {
				slog.Warn("access denied",
					"category", "auth",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", user.ID,
					"user_role", user.Role,
				)
				WriteAPIError(w, http.StatusForbidden, CodeForbidden, "Insufficient permissions", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
