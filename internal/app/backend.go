// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package app assembles storage backends and domain services from a [config.Config].

Both the API server and the admin CLI start from [OpenBackend], so the choice
between PostgreSQL and SQLite is made in exactly one place.
*/
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/habitrack/internal/habit"
	"github.com/taibuivan/habitrack/internal/platform/config"
	"github.com/taibuivan/habitrack/internal/platform/migration"
	pgstore "github.com/taibuivan/habitrack/internal/platform/postgres"
	"github.com/taibuivan/habitrack/internal/platform/sqlite"
	"github.com/taibuivan/habitrack/internal/users/auth"
)

// Backend bundles the repositories of one relational database.
type Backend struct {
	Driver string
	Users  auth.UserRepository
	Habits habit.Repository

	ping  func(context.Context) error
	close func() error
}

/*
OpenBackend connects to DATABASE_URL, applies pending migrations and builds
the repositories for the selected driver.

Returns:
  - *Backend: Ready to use; the caller must Close it
  - error: Connection or migration failures
*/
func OpenBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	driver, err := cfg.DatabaseDriver()
	if err != nil {
		return nil, err
	}

	backend := &Backend{Driver: driver}

	switch driver {
	case config.DriverPostgres:
		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, pgstore.Options{
			MaxConns: int32(cfg.DatabaseMaxConns),
		}, logger)
		if err != nil {
			return nil, err
		}
		backend.Users = auth.NewPostgresUserRepository(pool)
		backend.Habits = habit.NewPostgresRepository(pool)
		backend.ping = func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }
		backend.close = func() error { pool.Close(); return nil }

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath(), logger)
		if err != nil {
			return nil, err
		}
		backend.Users = auth.NewSQLiteUserRepository(db)
		backend.Habits = habit.NewSQLiteRepository(db)
		backend.ping = func(ctx context.Context) error { return sqlite.Ping(ctx, db) }
		backend.close = db.Close
	}

	if err := migration.RunUp(cfg.DatabaseURL, logger); err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("app: migrations failed: %w", err)
	}

	return backend, nil
}

// Ping checks database connectivity.
func (backend *Backend) Ping(ctx context.Context) error {
	return backend.ping(ctx)
}

// Close releases the database handle.
func (backend *Backend) Close() error {
	return backend.close()
}
