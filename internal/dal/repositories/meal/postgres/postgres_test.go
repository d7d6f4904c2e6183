package postgresrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/corray333/backend-labs/meals/internal/dal/postgres/pgtest"
	mealrepo "github.com/corray333/backend-labs/meals/internal/dal/repositories/meal/postgres"
	"github.com/corray333/backend-labs/meals/internal/service/models/meal"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMeal(name, price string) meal.Meal {
	now := time.Now().UTC().Truncate(time.Microsecond)

	return meal.Meal{
		ID:        uuid.New(),
		Name:      name,
		Price:     decimal.RequireFromString(price),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostgresMealRepository(t *testing.T) {
	client := pgtest.New(t)
	repo := mealrepo.NewPostgresMealRepository(client.Pool())
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	stored, err := repo.Upsert(ctx, []meal.Meal{
		newMeal("Tuna Roll", "21.99"),
		newMeal("Eel Avocado", "22.99"),
		newMeal("california Roll", "23.49"),
	})
	require.NoError(t, err)
	require.Len(t, stored, 3)

	t.Run("List sorts by name", func(t *testing.T) {
		meals, err := repo.List(ctx)
		require.NoError(t, err)

		names := make([]string, 0, len(meals))
		for _, m := range meals {
			names = append(names, m.Name)
		}
		assert.Equal(t, []string{"Eel Avocado", "Tuna Roll", "california Roll"}, names)
		assert.Equal(t, "22.99", meals[0].Price.StringFixed(2))
	})

	t.Run("List is stable", func(t *testing.T) {
		first, err := repo.List(ctx)
		require.NoError(t, err)
		second, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("Query by ids", func(t *testing.T) {
		meals, err := repo.Query(ctx, &meal.QueryMealsModel{Ids: []uuid.UUID{stored[0].ID, uuid.New()}})
		require.NoError(t, err)
		require.Len(t, meals, 1)
		assert.Equal(t, stored[0].ID, meals[0].ID)
	})

	t.Run("Upsert updates price by name", func(t *testing.T) {
		updated, err := repo.Upsert(ctx, []meal.Meal{newMeal("Tuna Roll", "19.50")})
		require.NoError(t, err)
		require.Len(t, updated, 1)
		assert.Equal(t, stored[0].ID, updated[0].ID)
		assert.True(t, decimal.RequireFromString("19.50").Equal(updated[0].Price))

		meals, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, meals, 3)
	})
}
