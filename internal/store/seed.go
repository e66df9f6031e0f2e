// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/studio-cms/internal/auth"
)

// Bootstrap account created on an empty database.
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// Seed makes sure a fresh install can be signed into: when no user exists
// it creates the bootstrap admin. Any existing user, admin or not, makes
// this a no-op.
func Seed(ctx context.Context, db *sql.DB) error {
	hash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	var created *User
	err = ExecTx(ctx, db, func(q *Queries) error {
		n, err := q.CountUsers(ctx)
		if err != nil {
			return fmt.Errorf("counting users: %w", err)
		}
		if n > 0 {
			return nil
		}

		now := time.Now().UTC()
		u, err := q.CreateUser(ctx, CreateUserParams{
			Email:        DefaultAdminEmail,
			PasswordHash: hash,
			Name:         DefaultAdminName,
			Role:         auth.RoleAdmin,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("creating admin user: %w", err)
		}
		created = &u
		return nil
	})
	if err != nil {
		return err
	}

	if created == nil {
		slog.Debug("users present, bootstrap admin not needed")
		return nil
	}
	slog.Warn("created bootstrap admin user, change its password",
		"category", "auth", "id", created.ID, "email", created.Email)
	return nil
}
