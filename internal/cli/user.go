// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/taibuivan/habitrack/internal/app"
	"github.com/taibuivan/habitrack/internal/platform/apperr"
	"github.com/taibuivan/habitrack/internal/users/auth"
)

// UserCreateOptions holds the flags of "user create".
type UserCreateOptions struct {
	*RootOptions
	Email         string
	Name          string
	Password      string
	PasswordStdin bool
}

// NewUserCommand groups the account commands.
func NewUserCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	cmd.AddCommand(newUserCreateCommand(opts))

	return cmd
}

func newUserCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UserCreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register an account with the same rules as the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserCreate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "account email (required)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "display name (required)")
	cmd.Flags().StringVar(&opts.Password, "password", "", "account password")
	cmd.Flags().BoolVar(&opts.PasswordStdin, "password-stdin", false, "read the password from the first line of stdin")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")

	return cmd
}

func runUserCreate(cmd *cobra.Command, opts *UserCreateOptions) error {
	password := opts.Password
	if opts.PasswordStdin {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read password from stdin: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	rt, err := opts.load(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	backend, err := app.OpenBackend(cmd.Context(), rt.cfg, rt.logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	service := auth.NewService(backend.Users, nil, nil, clockwork.NewRealClock(), nil, rt.logger)

	user, err := service.Register(cmd.Context(), auth.RegisterInput{
		Email:    opts.Email,
		Password: password,
		Name:     opts.Name,
	})
	if err != nil {
		return describe(err)
	}

	return opts.printer(cmd).Success(user,
		Field{Label: "id", Value: user.ID},
		Field{Label: "email", Value: user.Email},
		Field{Label: "name", Value: user.Name},
	)
}

// describe flattens an [apperr.AppError] and its field details into one line.
func describe(err error) error {
	appErr := apperr.As(err)
	if appErr == nil {
		return err
	}
	if len(appErr.Details) == 0 {
		return errors.New(appErr.Message)
	}

	parts := make([]string, 0, len(appErr.Details))
	for _, detail := range appErr.Details {
		parts = append(parts, detail.Field+": "+detail.Message)
	}
	return fmt.Errorf("%s (%s)", appErr.Message, strings.Join(parts, "; "))
}
