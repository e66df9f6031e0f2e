// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

const validSecret = "test-secret-key-32-bytes-long!!!"

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "STUDIO_SESSION_SECRET", validSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/studio.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/studio.db")
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("DBDriver = %q, want %q", cfg.DBDriver, "sqlite")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.CachePrefix != "studio:" {
		t.Errorf("CachePrefix = %q, want %q", cfg.CachePrefix, "studio:")
	}
	if cfg.CacheTTLDuration() != 5*time.Minute {
		t.Errorf("CacheTTLDuration = %v, want 5m", cfg.CacheTTLDuration())
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL)
	}
	if cfg.RecountSchedule != "@hourly" {
		t.Errorf("RecountSchedule = %q, want @hourly", cfg.RecountSchedule)
	}
	if cfg.DoSeed {
		t.Error("DoSeed = true, want false")
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true, want false")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "STUDIO_SESSION_SECRET", validSecret)
	setEnv(t, "STUDIO_DB_PATH", "/custom/path.db")
	setEnv(t, "STUDIO_DB_DRIVER", "sqlite3")
	setEnv(t, "STUDIO_SERVER_HOST", "0.0.0.0")
	setEnv(t, "STUDIO_SERVER_PORT", "3000")
	setEnv(t, "STUDIO_ENV", "production")
	setEnv(t, "STUDIO_LOG_LEVEL", "debug")
	setEnv(t, "STUDIO_REDIS_URL", "redis://localhost:6379/0")
	setEnv(t, "STUDIO_TOKEN_TTL", "90m")
	setEnv(t, "STUDIO_DO_SEED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.DBDriver != "sqlite3" {
		t.Errorf("DBDriver = %q, want %q", cfg.DBDriver, "sqlite3")
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "0.0.0.0:3000")
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", cfg.SlogLevel())
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache() = false, want true")
	}
	if cfg.TokenTTL != 90*time.Minute {
		t.Errorf("TokenTTL = %v, want 90m", cfg.TokenTTL)
	}
	if !cfg.DoSeed {
		t.Error("DoSeed = false, want true")
	}
}

func TestLoad_RequiredSessionSecret(t *testing.T) {
	os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail when STUDIO_SESSION_SECRET is not set")
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"empty secret", map[string]string{"STUDIO_SESSION_SECRET": ""}},
		{"31 byte secret", map[string]string{"STUDIO_SESSION_SECRET": "1234567890123456789012345678901"}},
		{"known weak secret", map[string]string{"STUDIO_SESSION_SECRET": "change-me-to-32-byte-secret-key!"}},
		{"bad env", map[string]string{"STUDIO_SESSION_SECRET": validSecret, "STUDIO_ENV": "staging"}},
		{"bad driver", map[string]string{"STUDIO_SESSION_SECRET": validSecret, "STUDIO_DB_DRIVER": "postgres"}},
		{"zero token ttl", map[string]string{"STUDIO_SESSION_SECRET": validSecret, "STUDIO_TOKEN_TTL": "0s"}},
		{"bad port", map[string]string{"STUDIO_SESSION_SECRET": validSecret, "STUDIO_SERVER_PORT": "http"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				setEnv(t, k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("Load() should fail")
			}
		})
	}
}

func TestLoad_SessionSecretMinimumLength(t *testing.T) {
	os.Clearenv()
	secret32 := "12345678901234567890123456789012"
	setEnv(t, "STUDIO_SESSION_SECRET", secret32)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should succeed with 32-byte secret: %v", err)
	}
	if cfg.SessionSecret != secret32 {
		t.Errorf("SessionSecret = %q, want %q", cfg.SessionSecret, secret32)
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := (Config{LogLevel: tt.level}).SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"12345678901234567890123456789012", false},
		{"abcDEF123456789012345678901234ab", true},
		{validSecret, true},
	}
	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}
