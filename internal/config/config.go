// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every variable name below.
const EnvPrefix = "STUDIO_"

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"DB_PATH" envDefault:"./data/studio.db"`
	DBDriver      string `env:"DB_DRIVER" envDefault:"sqlite"`
	SessionSecret string `env:"SESSION_SECRET,required"`
	ServerHost    string `env:"SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"SERVER_PORT" envDefault:"8080"`
	Env           string `env:"ENV" envDefault:"development"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL     string `env:"REDIS_URL"`                        // Optional Redis URL for distributed caching
	CachePrefix  string `env:"CACHE_PREFIX" envDefault:"studio:"` // Redis key prefix
	CacheTTL     int    `env:"CACHE_TTL" envDefault:"300"`        // Default cache TTL in seconds
	CacheMaxSize int    `env:"CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Bearer tokens for API clients
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// Background jobs
	RecountSchedule string        `env:"RECOUNT_SCHEDULE" envDefault:"@hourly"`
	PurgeSchedule   string        `env:"PURGE_SCHEDULE" envDefault:"@daily"`
	EventRetention  time.Duration `env:"EVENT_RETENTION" envDefault:"720h"`

	DoSeed bool `env:"DO_SEED" envDefault:"false"` // Seed demo content on start
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// CacheTTLDuration returns CacheTTL as a duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// SlogLevel maps LogLevel onto a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("STUDIO_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("STUDIO_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(c.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if c.SessionSecret == weak {
			return fmt.Errorf("STUDIO_SESSION_SECRET is a known default value and must not be used")
		}
	}

	switch c.Env {
	case "development", "production":
	default:
		return fmt.Errorf("STUDIO_ENV must be development or production, got %q", c.Env)
	}

	switch c.DBDriver {
	case "sqlite", "sqlite3":
	default:
		return fmt.Errorf("STUDIO_DB_DRIVER must be sqlite or sqlite3, got %q", c.DBDriver)
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("STUDIO_TOKEN_TTL must be positive")
	}
	if c.EventRetention <= 0 {
		return fmt.Errorf("STUDIO_EVENT_RETENTION must be positive")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("STUDIO_CACHE_TTL must not be negative")
	}

	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
