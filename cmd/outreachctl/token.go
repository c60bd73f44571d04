package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/octobees/outreach-campaigns/api/internal/auth"
)

func newTokenCmd(env *cliEnv) *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := env.loadConfig()
			if err != nil {
				return err
			}
			if !cfg.AuthEnabled() {
				return errors.New("AUTH_JWT_SECRET is not set")
			}
			if role != auth.RoleAdmin && role != auth.RoleOperator {
				return errors.New("role must be admin or operator")
			}
			if ttl <= 0 {
				ttl = cfg.TokenTTL
			}

			token, err := auth.NewJWTManager(cfg.JWTSecret, ttl).GenerateToken(subject, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "operator identifier stored in the token")
	cmd.Flags().StringVar(&role, "role", auth.RoleOperator, "admin or operator")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to JWT_TTL)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
