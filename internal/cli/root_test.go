// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/habitrack/internal/cli"
)

/* TestRootCommand checks the identity of the root command. */
func TestRootCommand(t *testing.T) {
	cmd := cli.NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "habitctl", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
}

/* TestCommandPresence resolves every subcommand path. */
func TestCommandPresence(t *testing.T) {
	cmd := cli.NewRootCommand()
	paths := [][]string{
		{"migrate", "up"},
		{"migrate", "version"},
		{"user", "create"},
		{"session", "issue"},
	}

	for _, path := range paths {
		t.Run(strings.Join(path, " "), func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err)
			require.NotNil(t, subCmd)
			assert.Equal(t, path[len(path)-1], subCmd.Name())
		})
	}
}

/* TestGlobalFlags checks the persistent flags and their defaults. */
func TestGlobalFlags(t *testing.T) {
	cmd := cli.NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

// execute runs habitctl with args and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func setEnvironment(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "sqlite://"+filepath.Join(t.TempDir(), "habitrack.db"))
	t.Setenv("SESSION_SECRET", strings.Repeat("k", 32))
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("APP_TIMEZONE", "UTC")
}

/* TestInvalidFormat rejects unknown output formats before running anything. */
func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, "", "--format", "yaml", "migrate", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

/* TestOperatorFlow migrates, creates an account and signs a token for it. */
func TestOperatorFlow(t *testing.T) {
	setEnvironment(t)

	// ── 1. Fresh database ──
	out, err := execute(t, "", "--format", "json", "migrate", "version")
	require.NoError(t, err)
	var fresh cli.MigrateResult
	require.NoError(t, json.Unmarshal([]byte(out), &fresh))
	assert.Equal(t, uint(0), fresh.Version)

	// ── 2. Apply migrations ──
	out, err = execute(t, "", "--format", "json", "migrate", "up")
	require.NoError(t, err)
	var migrated cli.MigrateResult
	require.NoError(t, json.Unmarshal([]byte(out), &migrated))
	assert.Equal(t, uint(1), migrated.Version)
	assert.False(t, migrated.Dirty)

	// ── 3. Create account with the password on stdin ──
	out, err = execute(t, "correct horse battery\n", "--format", "json",
		"user", "create", "--email", " Ada@Example.com ", "--name", "Ada", "--password-stdin")
	require.NoError(t, err)
	var user struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &user))
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)

	// ── 4. Duplicate email ──
	_, err = execute(t, "", "user", "create", "--email", "ada@example.com", "--name", "Ada", "--password", "another secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	// ── 5. Session token ──
	out, err = execute(t, "", "--format", "json", "session", "issue", user.ID)
	require.NoError(t, err)
	var session cli.SessionResult
	require.NoError(t, json.Unmarshal([]byte(out), &session))
	assert.Equal(t, user.ID, session.UserID)
	assert.NotEmpty(t, session.Token)

	// ── 6. Unknown account ──
	_, err = execute(t, "", "session", "issue", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

/* TestUserCreate_Validation reports field errors in the command error. */
func TestUserCreate_Validation(t *testing.T) {
	setEnvironment(t)

	out, err := execute(t, "", "user", "create", "--email", "not-an-email", "--name", "Ada", "--password", "short")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, err.Error(), "email")
}

/* TestMigrateVersion_Text prints labelled lines in text mode. */
func TestMigrateVersion_Text(t *testing.T) {
	setEnvironment(t)

	out, err := execute(t, "", "migrate", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "version: 1\n")
	assert.Contains(t, out, "dirty: false\n")
}
