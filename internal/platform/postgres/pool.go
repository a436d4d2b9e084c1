// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres provides a managed PostgreSQL connection pool.
//
// # Architecture
//
// This package is part of the Infrastructure layer. It manages the physical
// database connections (pgxpool); the repositories that use the pool live
// next to their domain (habit, users/auth).
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/habitrack/internal/platform/constants"
)

// Fixed pool behavior. Sizes come from [Options].
const (
	maxConnLifetime   = 60 * time.Minute
	maxConnIdleTime   = 10 * time.Minute
	healthCheckPeriod = 1 * time.Minute
	connectTimeout    = 5 * time.Second
	pingTimeout       = 2 * time.Second
)

// Options sizes the pool and bounds every statement it runs.
type Options struct {
	MaxConns         int32
	MinConns         int32
	StatementTimeout time.Duration
}

// DefaultOptions suits a single API instance.
func DefaultOptions() Options {
	return Options{
		MaxConns:         10,
		MinConns:         2,
		StatementTimeout: constants.GlobalRequestTimeout,
	}
}

// WithDefaults fills unset fields from [DefaultOptions] and keeps MinConns
// within MaxConns.
func (options Options) WithDefaults() Options {
	defaults := DefaultOptions()
	if options.MaxConns <= 0 {
		options.MaxConns = defaults.MaxConns
	}
	if options.MinConns <= 0 {
		options.MinConns = defaults.MinConns
	}
	options.MinConns = min(options.MinConns, options.MaxConns)
	if options.StatementTimeout <= 0 {
		options.StatementTimeout = defaults.StatementTimeout
	}
	return options
}

/*
NewPool creates and validates a new PostgreSQL connection pool.

Parameters:
  - ctx: Context for the initial connection attempt.
  - dsn: postgres:// or postgresql:// URL.
  - options: Pool sizing; zero values fall back to [DefaultOptions].
  - logger: Structured logger for pool-level events.
*/
func NewPool(ctx context.Context, dsn string, options Options, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	options = options.WithDefaults()

	poolConfig.MaxConns = options.MaxConns
	poolConfig.MinConns = options.MinConns
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	// Tag sessions so they are visible in pg_stat_activity.
	poolConfig.ConnConfig.RuntimeParams["application_name"] = constants.AppName

	statementTimeout := options.StatementTimeout
	poolConfig.AfterConnect = func(ctx context.Context, connection *pgx.Conn) error {
		_, err := connection.Exec(ctx, fmt.Sprintf("SET statement_timeout = %d", statementTimeout.Milliseconds()))
		return err
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_pool_connected",
		slog.Int("max_conns", int(options.MaxConns)),
		slog.Int("min_conns", int(options.MinConns)),
		slog.Duration("statement_timeout", statementTimeout),
	)

	return pool, nil
}

// Ping verifies that the PostgreSQL connection pool is healthy.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}

	return nil
}
