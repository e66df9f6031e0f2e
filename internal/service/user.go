// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/studio-cms/internal/auth"
	"github.com/olegiv/studio-cms/internal/cache"
	"github.com/olegiv/studio-cms/internal/store"
)

// ErrInvalidCredentials is returned by Authenticate for an unknown email,
// a wrong password or a disabled account alike.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserInput is the editable state of an admin panel user. Password may be
// empty on update to keep the current one.
type UserInput struct {
	Email    string
	Name     string
	Role     string
	IsActive bool
	Password string
}

// UserList is one page of users plus the total.
type UserList struct {
	Users []store.User
	Total int64
}

// UserService manages admin panel accounts.
type UserService struct {
	db      *sql.DB
	queries *store.Queries
	cache   cache.Cache
}

// NewUserService creates a UserService. c may be nil; when set, account
// changes drop the cached blog read models that embed author details.
func NewUserService(db *sql.DB, c cache.Cache) *UserService {
	return &UserService{db: db, queries: store.New(db), cache: c}
}

func (in *UserInput) validate(requirePassword bool) error {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)

	verr := &ValidationError{}
	if !validEmail(in.Email) {
		verr.Add("email", "A valid email address is required")
	}
	if in.Name == "" {
		verr.Add("name", "Name is required")
	}
	if !auth.ValidRole(in.Role) {
		verr.Add("role", "Role must be admin or editor")
	}
	if in.Password != "" || requirePassword {
		if err := auth.ValidatePassword(in.Password); err != nil {
			verr.Add("password", err.Error())
		}
	}
	return verr.OrNil()
}

// ListUsers returns one page of users, newest first.
func (s *UserService) ListUsers(ctx context.Context, p Pagination) (*UserList, error) {
	p = p.Normalize()
	total, err := s.queries.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}
	users, err := s.queries.ListUsers(ctx, store.ListUsersParams{Limit: p.Limit(), Offset: p.Offset()})
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return &UserList{Users: users, Total: total}, nil
}

// GetUser returns a user by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (store.User, error) {
	u, err := s.queries.GetUserByID(ctx, id)
	if err != nil {
		return store.User{}, lookupErr("user", err)
	}
	return u, nil
}

// CreateUser creates an account. Emails are unique ignoring case.
func (s *UserService) CreateUser(ctx context.Context, in UserInput) (store.User, error) {
	if err := in.validate(true); err != nil {
		return store.User{}, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return store.User{}, fmt.Errorf("hashing password: %w", err)
	}

	var created store.User
	err = store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		if err := checkEmail(ctx, q, in.Email, 0); err != nil {
			return err
		}
		now := time.Now().UTC()
		created, err = q.CreateUser(ctx, store.CreateUserParams{
			Email:        in.Email,
			PasswordHash: hash,
			Name:         in.Name,
			Role:         in.Role,
			IsActive:     in.IsActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		return err
	})
	return created, err
}

// UpdateUser changes an account. The last active admin can be neither
// demoted nor deactivated.
func (s *UserService) UpdateUser(ctx context.Context, id int64, in UserInput) (store.User, error) {
	if err := in.validate(false); err != nil {
		return store.User{}, err
	}
	var hash string
	if in.Password != "" {
		var err error
		if hash, err = auth.HashPassword(in.Password); err != nil {
			return store.User{}, fmt.Errorf("hashing password: %w", err)
		}
	}

	var updated store.User
	err := store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		current, err := q.GetUserByID(ctx, id)
		if err != nil {
			return lookupErr("user", err)
		}
		if err := checkEmail(ctx, q, in.Email, id); err != nil {
			return err
		}

		losesAdmin := isActiveAdmin(current) && (in.Role != auth.RoleAdmin || !in.IsActive)
		if losesAdmin {
			if err := checkNotLastAdmin(ctx, q, "The last active admin cannot be demoted or deactivated"); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		updated, err = q.UpdateUser(ctx, store.UpdateUserParams{
			Email:     in.Email,
			Name:      in.Name,
			Role:      in.Role,
			IsActive:  in.IsActive,
			UpdatedAt: now,
			ID:        id,
		})
		if err != nil {
			return fmt.Errorf("updating user: %w", err)
		}
		if hash != "" {
			return q.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{
				PasswordHash: hash,
				UpdatedAt:    now,
				ID:           id,
			})
		}
		return nil
	})
	if err != nil {
		return store.User{}, err
	}

	invalidate(ctx, s.cache, CachePrefixBlog)
	return updated, nil
}

// DeleteUser removes an account. Users cannot delete themselves, the last
// active admin, or an author who still owns posts.
func (s *UserService) DeleteUser(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return &ConflictError{Message: "You cannot delete your own account"}
	}
	return store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		current, err := q.GetUserByID(ctx, id)
		if err != nil {
			return lookupErr("user", err)
		}
		if isActiveAdmin(current) {
			if err := checkNotLastAdmin(ctx, q, "The last active admin cannot be deleted"); err != nil {
				return err
			}
		}
		posts, err := q.CountBlogPostsByAuthor(ctx, id)
		if err != nil {
			return fmt.Errorf("counting posts: %w", err)
		}
		if posts > 0 {
			return &ConflictError{
				Message: fmt.Sprintf("User is the author of %d blog post(s)", posts),
				Details: map[string]string{"postCount": strconv.FormatInt(posts, 10)},
			}
		}
		return q.DeleteUser(ctx, id)
	})
}

// Authenticate checks a login attempt and records the login time. Hashes
// using outdated parameters are upgraded in place.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (store.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			auth.BurnPasswordCheck(password)
			return store.User{}, ErrInvalidCredentials
		}
		return store.User{}, fmt.Errorf("loading user: %w", err)
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("stored password hash is unreadable", "user_id", user.ID, "error", err)
		return store.User{}, ErrInvalidCredentials
	}
	if !ok || !user.IsActive {
		return store.User{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if auth.NeedsRehash(user.PasswordHash) {
		if hash, err := auth.HashPassword(password); err == nil {
			if err := s.queries.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{
				PasswordHash: hash,
				UpdatedAt:    now,
				ID:           user.ID,
			}); err != nil {
				slog.Error("failed to upgrade password hash", "user_id", user.ID, "error", err)
			}
		}
	}
	if err := s.queries.UpdateUserLastLogin(ctx, now, user.ID); err != nil {
		slog.Error("failed to record last login", "user_id", user.ID, "error", err)
	}
	user.LastLoginAt = sql.NullTime{Time: now, Valid: true}
	return user, nil
}

// ChangePassword replaces a user's own password after checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, id int64, current, next string) error {
	user, err := s.queries.GetUserByID(ctx, id)
	if err != nil {
		return lookupErr("user", err)
	}
	ok, err := auth.CheckPassword(current, user.PasswordHash)
	if err != nil || !ok {
		return NewValidationError("currentPassword", "Current password is incorrect")
	}
	if err := auth.ValidatePassword(next); err != nil {
		return NewValidationError("newPassword", err.Error())
	}
	hash, err := auth.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return s.queries.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{
		PasswordHash: hash,
		UpdatedAt:    time.Now().UTC(),
		ID:           id,
	})
}

func isActiveAdmin(u store.User) bool {
	return u.Role == auth.RoleAdmin && u.IsActive
}

func checkNotLastAdmin(ctx context.Context, q *store.Queries, message string) error {
	admins, err := q.CountActiveAdmins(ctx)
	if err != nil {
		return fmt.Errorf("counting admins: %w", err)
	}
	if admins <= 1 {
		return &ConflictError{Message: message}
	}
	return nil
}

func checkEmail(ctx context.Context, q *store.Queries, email string, excludeID int64) error {
	n, err := q.UserEmailExistsExcluding(ctx, email, excludeID)
	if err != nil {
		return fmt.Errorf("checking email: %w", err)
	}
	if n > 0 {
		return NewValidationError("email", "Email is already in use")
	}
	return nil
}
