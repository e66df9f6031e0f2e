// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/olegiv/studio-cms/internal/store"
)

// TestLogger creates a test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestDB creates a temporary test database with migrations applied, using
// the default pure Go driver. Returns the database and a cleanup function
// that should be deferred.
func TestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	return TestDBWithDriver(t, store.DriverModernc)
}

// TestDBWithDriver is TestDB for a specific database/sql driver.
func TestDBWithDriver(t *testing.T, driver string) (*sql.DB, func()) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "studio-test.db")

	cfg := store.DefaultDBConfig()
	cfg.Driver = driver
	db, err := store.NewDBWithConfig(dbPath, cfg)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() {
		_ = db.Close()
	}
}

// CreateUser inserts an active user with an unusable password hash.
func CreateUser(t *testing.T, db *sql.DB, email, role string) store.User {
	t.Helper()

	now := time.Now().UTC()
	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Email:        email,
		PasswordHash: "x",
		Name:         "Test " + role,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}
