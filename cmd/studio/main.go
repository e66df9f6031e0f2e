// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command studio serves the JSON API behind the studio marketing site and
// its admin panel.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/studio-cms/internal/auth"
	"github.com/olegiv/studio-cms/internal/cache"
	"github.com/olegiv/studio-cms/internal/config"
	"github.com/olegiv/studio-cms/internal/handler/api"
	"github.com/olegiv/studio-cms/internal/logging"
	"github.com/olegiv/studio-cms/internal/middleware"
	"github.com/olegiv/studio-cms/internal/scheduler"
	"github.com/olegiv/studio-cms/internal/session"
	"github.com/olegiv/studio-cms/internal/store"
	"github.com/olegiv/studio-cms/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

const (
	shutdownTimeout      = 30 * time.Second
	rateLimiterPruneTick = 10 * time.Minute
	rateLimiterMaxIPs    = 10000
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "studio - content API for the studio website\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_SESSION_SECRET    Session and token signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_DB_PATH           SQLite database path (default: ./data/studio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_DB_DRIVER         sqlite (pure Go) or sqlite3 (cgo) (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_REDIS_URL         Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_DO_SEED           Seed demo content on start (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showVersion {
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(versionInfo version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := cfg.SlogLevel()
	slog.SetDefault(logging.NewLogger(os.Stdout, logLevel, nil))

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath, "driver", cfg.DBDriver)
	dbCfg := store.DefaultDBConfig()
	dbCfg.Driver = cfg.DBDriver
	db, err := store.NewDBWithConfig(cfg.DBPath, dbCfg)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// From here on WARN and ERROR records also land in the events table.
	logger := logging.NewLogger(os.Stdout, logLevel, db)
	slog.SetDefault(logger)
	slog.Info("database ready", "event_log_min_level", "warn")

	ctx := context.Background()
	if err := store.Seed(ctx, db); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	if cfg.DoSeed {
		if err := store.SeedDemo(ctx, db); err != nil {
			return fmt.Errorf("seeding demo content: %w", err)
		}
	}

	sessionManager := session.New(db, cfg.IsDevelopment())

	appCache, backend := cache.NewCache(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      cfg.CacheTTLDuration(),
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	})
	defer func() {
		if err := appCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	slog.Info("cache initialized", "backend", backend, "ttl", cfg.CacheTTLDuration())

	authorizer, err := auth.NewAuthorizer()
	if err != nil {
		return fmt.Errorf("initializing access policy: %w", err)
	}
	tokens := auth.NewTokenIssuer(cfg.SessionSecret, cfg.TokenTTL)

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	defer loginProtection.Stop()
	slog.Info("login protection initialized",
		"ip_rate_limit", "0.5 req/s",
		"max_failed_attempts", 5,
		"lockout_duration", "15m",
	)

	// 10 requests per second with burst of 20 per IP
	rateLimiter := middleware.NewGlobalRateLimiter(10.0, 20)

	apiHandler := api.NewHandler(api.Config{
		DB:              db,
		Sessions:        sessionManager,
		Tokens:          tokens,
		LoginProtection: loginProtection,
		Cache:           appCache,
		CacheTTL:        cfg.CacheTTLDuration(),
		Version:         versionInfo,
	})

	sched, err := scheduler.New(logger, apiHandler.Maintenance(), apiHandler.Events(), scheduler.Options{
		RecountSchedule: cfg.RecountSchedule,
		PurgeSchedule:   cfg.PurgeSchedule,
		EventRetention:  cfg.EventRetention,
	})
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	apiHandler.SetJobs(sched)
	sched.Start()
	defer sched.Stop()

	router := newRouter(routerDeps{
		Handler:         apiHandler,
		Sessions:        sessionManager,
		Authenticator:   middleware.NewAuthenticator(db, sessionManager, tokens),
		Authorizer:      authorizer,
		LoginProtection: loginProtection,
		RateLimiter:     rateLimiter,
		CSRF:            middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment()),
		IsDev:           cfg.IsDevelopment(),
	})

	pruneDone := make(chan struct{})
	defer close(pruneDone)
	go func() {
		ticker := time.NewTicker(rateLimiterPruneTick)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rateLimiter.Prune(rateLimiterMaxIPs)
			case <-pruneDone:
				return
			}
		}
	}()

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
