package cli

import (
	"fmt"
	"os"

	"github.com/corray333/backend-labs/meals/internal/dal/postgres"
	mealrepo "github.com/corray333/backend-labs/meals/internal/dal/repositories/meal/postgres"
	"github.com/corray333/backend-labs/meals/internal/dal/seed"
	"github.com/corray333/backend-labs/meals/internal/service/models/meal"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var (
		file    string
		migrate bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert the meal catalog",
		Long:  "Insert the meal catalog, updating the price of meals that already exist by name. Uses the built-in catalog unless --file is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			meals, err := loadCatalog(file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			client, err := postgres.NewClient(ctx, postgres.DSNFromEnv())
			if err != nil {
				return err
			}
			defer client.Close()

			if migrate {
				if err := client.Migrate(ctx); err != nil {
					return err
				}
			}

			stored, err := seed.Apply(ctx, mealrepo.NewPostgresMealRepository(client.Pool()), meals)
			if err != nil {
				return err
			}

			for _, m := range stored {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", m.ID, m.Name, m.Price.StringFixed(2))
			}

			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML catalog to load instead of the built-in one")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply migrations before seeding")

	return cmd
}

func loadCatalog(file string) ([]meal.Meal, error) {
	if file == "" {
		return seed.DefaultCatalog()
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	return seed.ParseCatalog(data)
}
