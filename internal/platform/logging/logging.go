// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package logging builds the process-wide [*slog.Logger].

Outputs:

  - Development: colored, human-readable lines on stderr (lmittmann/tint).
  - Otherwise: one JSON object per line on stdout, for log shippers.
  - LOG_FILE (optional): an additional JSON stream into a size-rotated file
    (natefinch/lumberjack), regardless of environment.

Every record carries app=habitrack.
*/
package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/taibuivan/habitrack/internal/platform/constants"
)

// Rotation policy for LOG_FILE.
const (
	maxFileSizeMB  = 20
	maxFileBackups = 5
	maxFileAgeDays = 14
)

// Options selects the handlers of a logger.
type Options struct {
	Level       slog.Level
	Development bool
	File        string

	// Output overrides stdout/stderr (used by tests).
	Output io.Writer
}

// New builds the logger. The returned closer flushes the rotating file, if any.
func New(options Options) (*slog.Logger, io.Closer) {
	handlers := []slog.Handler{consoleHandler(options)}
	var closer io.Closer = nopCloser{}

	if options.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   options.File,
			MaxSize:    maxFileSizeMB,
			MaxBackups: maxFileBackups,
			MaxAge:     maxFileAgeDays,
			Compress:   true,
		}
		handlers = append(handlers, slog.NewJSONHandler(fileWriter, &slog.HandlerOptions{Level: options.Level}))
		closer = fileWriter
	}

	var handler slog.Handler = fanout(handlers)
	if len(handlers) == 1 {
		handler = handlers[0]
	}

	return slog.New(handler).With(slog.String("app", constants.AppName)), closer
}

func consoleHandler(options Options) slog.Handler {
	if options.Development {
		output := options.Output
		if output == nil {
			output = os.Stderr
		}
		return tint.NewHandler(output, &tint.Options{
			Level:      options.Level,
			TimeFormat: time.Kitchen,
		})
	}

	output := options.Output
	if output == nil {
		output = os.Stdout
	}
	return slog.NewJSONHandler(output, &slog.HandlerOptions{Level: options.Level})
}

// ParseLevel maps LOG_LEVEL values onto slog levels (default: info).
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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

// # Fan-out

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (handlers fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanout) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			errs = append(errs, handler.Handle(ctx, record.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (handlers fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanout, len(handlers))
	for i, handler := range handlers {
		next[i] = handler.WithAttrs(attrs)
	}
	return next
}

func (handlers fanout) WithGroup(name string) slog.Handler {
	next := make(fanout, len(handlers))
	for i, handler := range handlers {
		next[i] = handler.WithGroup(name)
	}
	return next
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
