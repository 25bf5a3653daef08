package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/accountweb/accountweb/internal/storage/postgres"
)

func newMigrateCmd() *cobra.Command {
	databaseURL := envOr("DATABASE_URL", "")

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if databaseURL == "" {
				return errors.New("database URL required (--database-url or DATABASE_URL)")
			}
			return postgres.Migrate(cmd.Context(), databaseURL)
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", databaseURL, "PostgreSQL connection URL (env: DATABASE_URL)")

	return cmd
}
