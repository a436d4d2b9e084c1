// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/habitrack/internal/platform/logging"
)

func TestNew_JSONCarriesApp(t *testing.T) {
	var buffer bytes.Buffer
	logger, closer := logging.New(logging.Options{Level: slog.LevelInfo, Output: &buffer})
	defer closer.Close()

	logger.Debug("hidden")
	logger.Info("habit_created", slog.String("habit_id", "h-1"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &record))
	assert.Equal(t, "habitrack", record["app"])
	assert.Equal(t, "habit_created", record["msg"])
	assert.Equal(t, "h-1", record["habit_id"])
}

func TestNew_TeesIntoFile(t *testing.T) {
	var buffer bytes.Buffer
	path := filepath.Join(t.TempDir(), "habitrack.log")

	logger, closer := logging.New(logging.Options{
		Level:       slog.LevelInfo,
		Development: true,
		File:        path,
		Output:      &buffer,
	})

	logger.With(slog.String("request_id", "r-1")).Warn("completion_recorded")
	require.NoError(t, closer.Close())

	assert.Contains(t, buffer.String(), "completion_recorded")

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(contents, &record))
	assert.Equal(t, "r-1", record["request_id"])
	assert.Equal(t, "WARN", record["level"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, logging.ParseLevel(tt.in), tt.in)
	}
}
