// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, rate limiting and request context handling.
package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/studio-cms/internal/auth"
	"github.com/olegiv/studio-cms/internal/session"
	"github.com/olegiv/studio-cms/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request data.
const (
	ContextKeyUser        ContextKey = "user"
	ContextKeyAuthMethod  ContextKey = "auth_method"
	ContextKeyRequestPath ContextKey = "request_path"
)

// Authentication methods recorded in the request context.
const (
	AuthMethodSession = "session"
	AuthMethodBearer  = "bearer"
)

// Authenticator resolves the calling user from a bearer token or the
// session cookie.
type Authenticator struct {
	queries  *store.Queries
	sessions *scs.SessionManager
	tokens   *auth.TokenIssuer
}

// NewAuthenticator creates an Authenticator. tokens may be nil to disable
// bearer authentication.
func NewAuthenticator(db *sql.DB, sessions *scs.SessionManager, tokens *auth.TokenIssuer) *Authenticator {
	return &Authenticator{
		queries:  store.New(db),
		sessions: sessions,
		tokens:   tokens,
	}
}

// BearerToken returns the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// resolve returns the user id and auth method, or 0 when the request
// carries no usable credentials.
func (a *Authenticator) resolve(r *http.Request) (int64, string) {
	if raw, ok := BearerToken(r); ok {
		if a.tokens == nil {
			return 0, ""
		}
		claims, err := a.tokens.Parse(raw)
		if err != nil {
			slog.Debug("rejected bearer token", "error", err, "path", r.URL.Path)
			return 0, ""
		}
		id, err := claims.UserID()
		if err != nil {
			return 0, ""
		}
		return id, AuthMethodBearer
	}

	if a.sessions != nil {
		if id := session.UserID(r.Context(), a.sessions); id != 0 {
			return id, AuthMethodSession
		}
	}
	return 0, ""
}

// RequireUser rejects requests without a valid, active user with 401 and
// stores the user in the request context otherwise.
func (a *Authenticator) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, method := a.resolve(r)
		if userID == 0 {
			WriteAPIError(w, http.StatusUnauthorized, CodeUnauthorized, "Authentication required", nil)
			return
		}

		user, err := a.queries.GetUserByID(r.Context(), userID)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				slog.Error("failed to load user", "error", err, "user_id", userID)
				WriteAPIError(w, http.StatusInternalServerError, CodeInternal, "Internal server error", nil)
				return
			}
			// Stale session for a deleted user.
			if method == AuthMethodSession {
				_ = a.sessions.Destroy(r.Context())
			}
			WriteAPIError(w, http.StatusUnauthorized, CodeUnauthorized, "Authentication required", nil)
			return
		}

		if !user.IsActive {
			WriteAPIError(w, http.StatusUnauthorized, CodeUnauthorized, "Account is disabled", nil)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUser, user)
		ctx = context.WithValue(ctx, ContextKeyAuthMethod, method)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithUser returns a copy of r carrying user, as RequireUser would.
func WithUser(r *http.Request, user store.User, method string) *http.Request {
	ctx := context.WithValue(r.Context(), ContextKeyUser, user)
	ctx = context.WithValue(ctx, ContextKeyAuthMethod, method)
	return r.WithContext(ctx)
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *store.User {
	user, ok := r.Context().Value(ContextKeyUser).(store.User)
	if !ok {
		return nil
	}
	return &user
}

// GetUserID returns the current user's ID from context, or 0 if not found.
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}

// GetAuthMethod returns how the current request was authenticated.
func GetAuthMethod(r *http.Request) string {
	method, _ := r.Context().Value(ContextKeyAuthMethod).(string)
	return method
}

// RequestPath creates middleware that stores the request path in the context.
// This is used by the logging handler to include the URL in error logs.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestPath retrieves the request path from the context.
func GetRequestPath(ctx context.Context) string {
	path, ok := ctx.Value(ContextKeyRequestPath).(string)
	if !ok {
		return ""
	}
	return path
}
