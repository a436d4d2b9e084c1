// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sqlite opens the embedded SQLite backend used for single-node
deployments and for tests.

The pure-Go modernc.org/sqlite driver is wrapped with sqlx for named
parameters and struct scanning. Every connection enables foreign keys (so
deleting a habit cascades to its completions) and a busy timeout.

SQLite serializes writers, so the handle is limited to one open connection.
*/
package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

const (
	// busyTimeout is how long a statement waits on a locked database.
	busyTimeout = 5 * time.Second
	// pingTimeout is the maximum duration for a health check ping.
	pingTimeout = 2 * time.Second
)

// Open creates the database file (and its directory) when needed and returns
// a verified handle.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sqlx.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: empty database path")
	}

	if directory := filepath.Dir(path); directory != "." {
		if err := os.MkdirAll(directory, 0o750); err != nil {
			return nil, fmt.Errorf("sqlite: failed to create directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(0)

	if err := Ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("sqlite_database_opened", slog.String("path", path))
	return db, nil
}

// DSN builds a modernc.org/sqlite connection string with the required pragmas.
func DSN(path string) string {
	query := url.Values{}
	query.Add("_pragma", "foreign_keys(1)")
	query.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	query.Add("_pragma", "journal_mode(WAL)")
	return "file:" + path + "?" + query.Encode()
}

// Ping verifies that the database handle is usable.
func Ping(ctx context.Context, db *sqlx.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}
	return nil
}
