// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/habitrack/internal/platform/migration"
)

// MigrateResult is the JSON shape of the migrate commands.
type MigrateResult struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
}

// NewMigrateCommand groups the schema commands.
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(newMigrateUpCommand(opts))
	cmd.AddCommand(newMigrateVersionCommand(opts))

	return cmd
}

func newMigrateUpCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.load(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := migration.RunUp(rt.cfg.DatabaseURL, rt.logger); err != nil {
				return err
			}
			return reportVersion(cmd, opts, rt)
		},
	}
}

func newMigrateVersionCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.load(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			return reportVersion(cmd, opts, rt)
		},
	}
}

func reportVersion(cmd *cobra.Command, opts *RootOptions, rt *runtime) error {
	status, err := migration.Version(rt.cfg.DatabaseURL, rt.logger)
	if err != nil {
		return err
	}

	result := MigrateResult{Version: status.Version, Dirty: status.Dirty}
	return opts.printer(cmd).Success(result,
		Field{Label: "version", Value: result.Version},
		Field{Label: "dirty", Value: fmt.Sprint(result.Dirty)},
	)
}
