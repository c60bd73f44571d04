package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/octobees/outreach-campaigns/api/internal/config"
	"github.com/octobees/outreach-campaigns/api/internal/logging"
	"github.com/octobees/outreach-campaigns/api/internal/repository"
)

// cliEnv is shared by every subcommand. Tests replace loadConfig to avoid the
// process environment.
type cliEnv struct {
	databaseURL string
	loadConfig  func() (*config.Config, error)
	logger      *zap.Logger
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&cliEnv{loadConfig: config.Load})
}

func newRootCmdWith(env *cliEnv) *cobra.Command {
	root := &cobra.Command{
		Use:          "outreachctl",
		Short:        "Operator tooling for the outreach campaigns API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if env.logger != nil {
				return nil
			}
			cfg, err := env.loadConfig()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Environment, cfg.LogLevel)
			if err != nil {
				return err
			}
			env.logger = logger
			return nil
		},
	}
	root.PersistentFlags().StringVar(&env.databaseURL, "database-url", "", "database DSN (defaults to DATABASE_URL)")

	root.AddCommand(
		newMigrateCmd(env),
		newTokenCmd(env),
		newAccountsCmd(env),
	)
	return root
}

// dsn returns the flag value or DATABASE_URL.
func (e *cliEnv) dsn() (string, error) {
	if e.databaseURL != "" {
		return e.databaseURL, nil
	}
	cfg, err := e.loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.DatabaseURL == "" {
		return "", errors.New("DATABASE_URL or --database-url is required")
	}
	return cfg.DatabaseURL, nil
}

func (e *cliEnv) openRepositories(ctx context.Context, migrate bool) (repository.Repositories, func(), error) {
	dsn, err := e.dsn()
	if err != nil {
		return repository.Repositories{}, nil, err
	}

	repos, closeFn, err := repository.Open(ctx, dsn, migrate)
	if err != nil {
		return repository.Repositories{}, nil, fmt.Errorf("open database: %w", err)
	}
	return repos, closeFn, nil
}
