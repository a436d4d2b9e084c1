// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/habitrack/internal/platform/config"
)

var secret = strings.Repeat("s", config.MinSessionSecretLength)

/* TestParse reads the environment and applies defaults. */
func TestParse(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite:///tmp/habitrack.db")
	t.Setenv("SESSION_SECRET", secret)
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("APP_TIMEZONE", "Asia/Tokyo")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "/tmp/habitrack.db", cfg.SQLitePath())
	assert.Len(t, cfg.AllowedOrigins, 2)

	location, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", location.String())
}

/* TestParse_MissingRequired fails without DATABASE_URL. */
func TestParse_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SESSION_SECRET", secret)

	_, err := config.Parse()
	require.Error(t, err)
}

/* TestValidate covers the cross-field rules. */
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{"valid postgres", config.Config{DatabaseURL: "postgres://u:p@db/habitrack", SessionSecret: secret}, ""},
		{"valid postgresql", config.Config{DatabaseURL: "postgresql://db/habitrack", SessionSecret: secret}, ""},
		{"short secret", config.Config{DatabaseURL: "sqlite://h.db", SessionSecret: "short"}, "SESSION_SECRET"},
		{"unknown scheme", config.Config{DatabaseURL: "mysql://db", SessionSecret: secret}, "DATABASE_URL"},
		{"bad timezone", config.Config{DatabaseURL: "sqlite://h.db", SessionSecret: secret, Timezone: "Mars/Olympus"}, "APP_TIMEZONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

/* TestOriginAllowed trusts every origin in development only. */
func TestOriginAllowed(t *testing.T) {
	development := config.Config{Environment: "development"}
	assert.True(t, development.OriginAllowed("https://anything.test"))

	production := config.Config{Environment: "production", AllowedOrigins: []string{" https://app.example.com"}}
	assert.True(t, production.OriginAllowed("https://APP.example.com"))
	assert.False(t, production.OriginAllowed("https://evil.test"))
}
