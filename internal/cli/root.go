// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli implements habitctl, the operator command line for Habitrack.

Every command reads the same environment as the API server (DATABASE_URL,
SESSION_SECRET, APP_TIMEZONE, an optional .env file) so that operators can
migrate, seed and debug a deployment without going through HTTP.

Commands:

  - migrate up | version
  - user create
  - session issue
*/
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/taibuivan/habitrack/internal/platform/config"
	"github.com/taibuivan/habitrack/internal/platform/constants"
	"github.com/taibuivan/habitrack/internal/platform/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command of habitctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:          "habitctl",
		Short:        "Habitrack operator tool",
		Long:         "Operator commands for a Habitrack deployment: schema migrations, accounts and session tokens.",
		Version:      constants.AppVersion,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewUserCommand(opts))
	cmd.AddCommand(NewSessionCommand(opts))

	return cmd
}

// # Runtime

// runtime is what a command needs once the environment has been read.
type runtime struct {
	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
}

// load reads the configuration and builds a logger that writes to stderr,
// leaving stdout for command results.
func (opts *RootOptions) load(cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}

	logger, closer := logging.New(logging.Options{
		Level:       level,
		Development: true,
		Output:      cmd.ErrOrStderr(),
	})

	return &runtime{cfg: cfg, logger: logger, closer: closer}, nil
}

func (r *runtime) Close() {
	_ = r.closer.Close()
}

// printer returns the output formatter for a command.
func (opts *RootOptions) printer(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
}
