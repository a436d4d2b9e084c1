// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/taibuivan/habitrack/internal/app"
	"github.com/taibuivan/habitrack/internal/platform/sec"
	"github.com/taibuivan/habitrack/internal/users/auth"
)

// SessionResult is the JSON shape of "session issue".
type SessionResult struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewSessionCommand groups the session token commands.
func NewSessionCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Work with session tokens",
	}

	cmd.AddCommand(newSessionIssueCommand(opts))

	return cmd
}

func newSessionIssueCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "issue <user-id>",
		Short: "Sign a bearer token for an existing account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			clock := clockwork.NewRealClock()
			signer, err := sec.NewSessionSigner(rt.cfg.SessionSecret, clock)
			if err != nil {
				return err
			}

			// Tokens are only signed for accounts that exist.
			service := auth.NewService(backend.Users, nil, signer, clock, nil, rt.logger)
			user, err := service.Me(cmd.Context(), args[0])
			if err != nil {
				return describe(err)
			}

			token, expiresAt, err := signer.Issue(user.ID)
			if err != nil {
				return err
			}

			result := SessionResult{UserID: user.ID, Token: token, ExpiresAt: expiresAt}
			return opts.printer(cmd).Success(result,
				Field{Label: "user", Value: user.ID},
				Field{Label: "expires_at", Value: expiresAt.Format(time.RFC3339)},
				Field{Label: "token", Value: token},
			)
		},
	}
}
