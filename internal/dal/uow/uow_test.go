package uow_test

import (
	"context"
	"testing"
	"time"

	"github.com/corray333/backend-labs/meals/internal/dal/postgres/pgtest"
	"github.com/corray333/backend-labs/meals/internal/dal/uow"
	"github.com/corray333/backend-labs/meals/internal/service/models/meal"
	"github.com/corray333/backend-labs/meals/internal/service/models/order"
	"github.com/corray333/backend-labs/meals/internal/service/models/orderitem"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(mealIDs ...uuid.UUID) order.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	o := order.Order{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
	for i, id := range mealIDs {
		o.OrderItems = append(o.OrderItems, orderitem.OrderItem{
			ID:        uuid.New(),
			OrderID:   o.ID,
			MealID:    id,
			Quantity:  i + 1,
			Position:  i,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return o
}

func insert(ctx context.Context, work *uow.UnitOfWork, o order.Order) error {
	if _, err := work.OrderRepository().Insert(ctx, o); err != nil {
		return err
	}
	_, err := work.OrderItemRepository().BulkInsert(ctx, o.OrderItems)

	return err
}

func TestUnitOfWork(t *testing.T) {
	client := pgtest.New(t)
	ctx := context.Background()

	seeded, err := uow.NewUnitOfWork(client).MealRepository().Upsert(ctx, []meal.Meal{
		{ID: uuid.New(), Name: "Salmon Nigiri", Price: decimal.RequireFromString("24.49")},
	})
	require.NoError(t, err)
	salmon := seeded[0]

	countOrders := func(t *testing.T) int {
		orders, err := uow.NewUnitOfWork(client).OrderRepository().Query(ctx, &order.QueryOrdersModel{})
		require.NoError(t, err)

		return len(orders)
	}

	t.Run("Rollback discards order and items", func(t *testing.T) {
		work := uow.NewUnitOfWork(client)
		require.NoError(t, work.Begin(ctx))
		require.NoError(t, insert(ctx, work, newOrder(salmon.ID, salmon.ID)))
		require.NoError(t, work.Rollback(ctx))

		assert.Equal(t, 0, countOrders(t))
	})

	t.Run("Unknown meal aborts the transaction", func(t *testing.T) {
		work := uow.NewUnitOfWork(client)
		require.NoError(t, work.Begin(ctx))
		err := insert(ctx, work, newOrder(salmon.ID, uuid.New()))
		require.Error(t, err)
		require.NoError(t, work.Rollback(ctx))

		assert.Equal(t, 0, countOrders(t))
	})

	t.Run("Commit stores order and items with meals", func(t *testing.T) {
		o := newOrder(salmon.ID, salmon.ID)

		work := uow.NewUnitOfWork(client)
		require.NoError(t, work.Begin(ctx))
		require.NoError(t, insert(ctx, work, o))
		require.NoError(t, work.Commit(ctx))
		require.NoError(t, work.Rollback(ctx))

		assert.Equal(t, 1, countOrders(t))

		items, err := uow.NewUnitOfWork(client).OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
			OrderIds: []uuid.UUID{o.ID},
		})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, 0, items[0].Position)
		assert.Equal(t, 1, items[0].Quantity)
		assert.Equal(t, 2, items[1].Quantity)
		assert.Equal(t, "Salmon Nigiri", items[1].Meal.Name)
		assert.True(t, salmon.Price.Equal(items[1].Meal.Price))
	})

	t.Run("Begin twice fails", func(t *testing.T) {
		work := uow.NewUnitOfWork(client)
		require.NoError(t, work.Begin(ctx))
		defer func() { _ = work.Rollback(ctx) }()

		assert.Error(t, work.Begin(ctx))
	})
}
