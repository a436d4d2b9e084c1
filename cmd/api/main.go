// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Habitrack HTTP API server.
//
// # Startup Sequence
//
//  1. Load configuration from the environment (and an optional .env file).
//  2. Initialize the structured logger.
//  3. Open the database (PostgreSQL or SQLite) and run migrations.
//  4. Connect to Redis when REDIS_URL is set.
//  5. Wire services and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/habitrack/internal/api"
	"github.com/taibuivan/habitrack/internal/app"
	"github.com/taibuivan/habitrack/internal/habit"
	"github.com/taibuivan/habitrack/internal/platform/calendar"
	"github.com/taibuivan/habitrack/internal/platform/config"
	"github.com/taibuivan/habitrack/internal/platform/constants"
	"github.com/taibuivan/habitrack/internal/platform/logging"
	"github.com/taibuivan/habitrack/internal/platform/metrics"
	redisstore "github.com/taibuivan/habitrack/internal/platform/redis"
	"github.com/taibuivan/habitrack/internal/platform/sec"
	"github.com/taibuivan/habitrack/internal/users/auth"
)

func main() {
	// ── 1. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// ── 2. Logger ─────────────────────────────────────────────────────────
	level := logging.ParseLevel(cfg.LogLevel)
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log, logCloser := logging.New(logging.Options{
		Level:       level,
		Development: cfg.IsDevelopment(),
		File:        cfg.LogFile,
	})
	defer func() { _ = logCloser.Close() }()
	slog.SetDefault(log)

	log.Info("service_initializing",
		slog.String("version", constants.AppVersion),
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	location, err := cfg.Location()
	must(log, err, "resolve timezone")

	// Root context for background workers; cancelled on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Bound startup so misconfiguration is caught quickly rather than
	// hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, constants.StartupTimeout)
	defer startupCancel()

	// ── 3. Database ───────────────────────────────────────────────────────
	backend, err := app.OpenBackend(startupCtx, cfg, log)
	must(log, err, "open database")
	defer func() {
		log.Info("closing_database", slog.String("driver", backend.Driver))
		if cerr := backend.Close(); cerr != nil {
			log.Error("database_close_error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var (
		rdb         *redis.Client
		revocations auth.RevocationStore = auth.NoopRevocationStore{}
	)
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()
		revocations = auth.NewRedisRevocationStore(rdb)
	} else {
		log.Warn("redis_disabled", slog.String("effect", "logout does not revoke sessions"))
	}

	// ── 5. Shared Collaborators ───────────────────────────────────────────
	clock := clockwork.NewRealClock()
	cal := calendar.New(clock, location)
	collector := metrics.New()

	signer, err := sec.NewSessionSigner(cfg.SessionSecret, clock)
	must(log, err, "initialize session signer")

	// ── 6. Health handlers (wired with real dependency checkers) ──────────
	dependencies := api.HealthDependencies{
		Database: &api.HealthCheck{Name: backend.Driver, Check: backend.Ping},
	}
	if rdb != nil {
		dependencies.Cache = &api.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		}
	}
	liveness, readiness := api.NewHealthHandlers(dependencies, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(backend.Users, revocations, signer, clock, collector, log)
	habitService := habit.NewService(backend.Habits, cal, collector, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, cfg.IsProduction()),
		Habit:     habit.NewHandler(habitService),
	}

	server := api.NewServer(rootCtx, cfg, log, authService, collector, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
	}

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
