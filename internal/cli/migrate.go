package cli

import (
	"github.com/corray333/backend-labs/meals/internal/dal/postgres"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := postgres.NewClient(ctx, postgres.DSNFromEnv())
			if err != nil {
				return err
			}
			defer client.Close()

			return client.Migrate(ctx)
		},
	}
}
