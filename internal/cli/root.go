package cli

import (
	"github.com/corray333/backend-labs/meals/internal/config"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "meals",
		Short:         "Meal catalog and order service",
		Long:          "meals serves the meal catalog and order history over HTTP and manages its database.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(configFile); err != nil {
				return err
			}
			config.SetupLogger()

			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "path to config file (default: ./config.yaml or /etc/meals-svc/config.yaml)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSeedCmd())

	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
