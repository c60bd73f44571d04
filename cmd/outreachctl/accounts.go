package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/octobees/outreach-campaigns/api/internal/service"
)

func newAccountsCmd(env *cliEnv) *cobra.Command {
	accounts := &cobra.Command{
		Use:   "accounts",
		Short: "Manage LinkedIn accounts",
	}

	var migrate bool
	importCmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import or update accounts from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			repos, closeFn, err := env.openRepositories(cmd.Context(), migrate)
			if err != nil {
				return err
			}
			defer closeFn()

			summary, err := service.NewAccountsService(repos.Accounts).ImportCSV(cmd.Context(), file)
			if err != nil {
				return err
			}

			env.logger.Info("accounts imported",
				zap.String("file", args[0]),
				zap.Int("inserted", summary.Inserted),
				zap.Int("updated", summary.Updated),
				zap.Int("skipped", summary.Skipped),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "inserted=%d updated=%d skipped=%d total=%d\n",
				summary.Inserted, summary.Updated, summary.Skipped, summary.Total)
			return nil
		},
	}
	importCmd.Flags().BoolVar(&migrate, "migrate", false, "apply migrations before importing")

	accounts.AddCommand(importCmd)
	return accounts
}
