// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/olegiv/studio-cms/internal/logging"
	"github.com/olegiv/studio-cms/internal/middleware"
	"github.com/olegiv/studio-cms/internal/service"
	"github.com/olegiv/studio-cms/internal/session"
	"github.com/olegiv/studio-cms/internal/store"
)

// LoginRequest is the body of POST /api/auth/login and /api/auth/token.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest is the body of PUT /api/auth/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// SessionResponse describes the caller's session.
type SessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *UserResponse `json:"user,omitempty"`
}

// TokenResponse is returned by POST /api/auth/token.
type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// writeLocked writes a 429 for a locked account.
func writeLocked(w http.ResponseWriter, remaining time.Duration) {
	minutes := int(math.Ceil(remaining.Minutes()))
	w.Header().Set("Retry-After", fmt.Sprintf("%d", int(math.Ceil(remaining.Seconds()))))
	middleware.WriteAPIError(w, http.StatusTooManyRequests, middleware.CodeRateLimited,
		fmt.Sprintf("Account temporarily locked. Try again in %d minute(s).", minutes), nil)
}

// checkCredentials authenticates a login request, applying the account
// lockout policy. On failure it writes the response and returns false.
func (h *Handler) checkCredentials(w http.ResponseWriter, r *http.Request, req LoginRequest) (store.User, bool) {
	ip := remoteIP(r)

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(req.Email); locked {
			slog.Warn("login attempt on locked account", "category", logging.CategoryAuth, "email", req.Email, "ip", ip)
			writeLocked(w, remaining)
			return store.User{}, false
		}
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			WriteInternalError(w, r, "failed to authenticate user", err)
			return store.User{}, false
		}
		_ = h.events.LogAuthEvent(r.Context(), logging.EventLevelWarning, "Failed login attempt", 0, ip,
			map[string]any{"email": req.Email})
		if h.loginProtection != nil {
			if locked, lockDuration := h.loginProtection.RecordFailedAttempt(req.Email); locked {
				writeLocked(w, lockDuration)
				return store.User{}, false
			}
		}
		WriteUnauthorized(w, "Invalid email or password")
		return store.User{}, false
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(req.Email)
	}
	return user, true
}

// Login handles POST /api/auth/login and starts a cookie session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, ok := h.checkCredentials(w, r, req)
	if !ok {
		return
	}

	if err := session.Login(r.Context(), h.sessions, user.ID); err != nil {
		WriteInternalError(w, r, "failed to start session", err)
		return
	}

	_ = h.events.LogAuthEvent(r.Context(), logging.EventLevelInfo, "User logged in", user.ID, remoteIP(r),
		map[string]any{"email": user.Email, "method": middleware.AuthMethodSession})
	resp := userResponse(user)
	WriteSuccess(w, SessionResponse{Authenticated: true, User: &resp}, nil)
}

// Logout handles POST /api/auth/logout. It succeeds without a session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := session.UserID(r.Context(), h.sessions)
	if err := session.Logout(r.Context(), h.sessions); err != nil {
		WriteInternalError(w, r, "failed to destroy session", err)
		return
	}
	if userID != 0 {
		_ = h.events.LogAuthEvent(r.Context(), logging.EventLevelInfo, "User logged out", userID, remoteIP(r), nil)
	}
	WriteNoContent(w)
}

// Session handles GET /api/auth/session.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	userID := session.UserID(r.Context(), h.sessions)
	if userID == 0 {
		WriteSuccess(w, SessionResponse{}, nil)
		return
	}
	user, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			_ = session.Logout(r.Context(), h.sessions)
			WriteSuccess(w, SessionResponse{}, nil)
			return
		}
		WriteInternalError(w, r, "failed to load session user", err)
		return
	}
	if !user.IsActive {
		WriteSuccess(w, SessionResponse{}, nil)
		return
	}
	resp := userResponse(user)
	WriteSuccess(w, SessionResponse{Authenticated: true, User: &resp}, nil)
}

// IssueToken handles POST /api/auth/token, exchanging credentials for a
// bearer token.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	if h.tokens == nil {
		WriteNotFound(w, "Token authentication is disabled")
		return
	}
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, ok := h.checkCredentials(w, r, req)
	if !ok {
		return
	}

	token, expiresAt, err := h.tokens.Issue(user.ID, user.Role)
	if err != nil {
		WriteInternalError(w, r, "failed to issue token", err)
		return
	}

	_ = h.events.LogAuthEvent(r.Context(), logging.EventLevelInfo, "API token issued", user.ID, remoteIP(r),
		map[string]any{"expires_at": expiresAt.Format(time.RFC3339)})
	WriteCreated(w, TokenResponse{Token: token, TokenType: "Bearer", ExpiresAt: expiresAt})
}

// ChangePassword handles PUT /api/auth/password for the signed-in user.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == 0 {
		WriteUnauthorized(w, "Authentication required")
		return
	}
	var req ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.users.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, err, "failed to change password")
		return
	}
	_ = h.events.LogAuthEvent(r.Context(), logging.EventLevelInfo, "Password changed", userID, remoteIP(r), nil)
	WriteNoContent(w)
}
