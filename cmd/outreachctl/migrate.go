package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/octobees/outreach-campaigns/api/internal/database"
)

func newMigrateCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, err := env.dsn()
			if err != nil {
				return err
			}
			_, closeFn, err := env.openRepositories(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer closeFn()

			env.logger.Info("schema is up to date", zap.String("driver", database.Driver(dsn)))
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
