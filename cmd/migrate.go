package cmd

import (
	"fmt"

	"dispatchsim/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCommand(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := bootstrap(ctx, *cfgFile)
			if err != nil {
				return err
			}
			defer rt.close()

			if err := postgres.Migrate(rt.db.WithContext(ctx)); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			rt.logger.InfoContext(ctx, "schema migrated")
			return nil
		},
	}
}
