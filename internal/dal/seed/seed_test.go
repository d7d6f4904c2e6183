package seed_test

import (
	"context"
	"testing"

	"github.com/corray333/backend-labs/meals/internal/dal/postgres/pgtest"
	"github.com/corray333/backend-labs/meals/internal/dal/seed"
	"github.com/corray333/backend-labs/meals/internal/dal/uow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	meals, err := seed.DefaultCatalog()
	require.NoError(t, err)
	require.Len(t, meals, 4)

	prices := map[string]string{}
	for _, m := range meals {
		prices[m.Name] = m.Price.StringFixed(2)
	}
	assert.Equal(t, map[string]string{
		"Salmon Nigiri":   "24.49",
		"Tuna Roll":       "21.99",
		"Eel Avocado":     "22.99",
		"California Roll": "23.49",
	}, prices)
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := map[string]string{
		"bad yaml":       "meals: [",
		"missing name":   "meals:\n  - price: \"1.00\"\n",
		"duplicate name": "meals:\n  - {name: A, price: \"1\"}\n  - {name: A, price: \"2\"}\n",
		"bad price":      "meals:\n  - {name: A, price: cheap}\n",
		"negative price": "meals:\n  - {name: A, price: \"-1\"}\n",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := seed.ParseCatalog([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestApply_IsIdempotent(t *testing.T) {
	client := pgtest.New(t)
	ctx := context.Background()
	repo := uow.NewUnitOfWork(client).MealRepository()

	meals, err := seed.DefaultCatalog()
	require.NoError(t, err)

	first, err := seed.Apply(ctx, repo, meals)
	require.NoError(t, err)

	again, err := seed.DefaultCatalog()
	require.NoError(t, err)
	_, err = seed.Apply(ctx, repo, again)
	require.NoError(t, err)

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 4)
	assert.Equal(t, "California Roll", listed[0].Name)

	ids := map[string]bool{}
	for _, m := range first {
		ids[m.ID.String()] = true
	}
	for _, m := range listed {
		assert.True(t, ids[m.ID.String()], "meal %s changed id", m.Name)
	}
}
