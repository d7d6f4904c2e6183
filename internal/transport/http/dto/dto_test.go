package dto_test

import (
	"testing"

	"github.com/corray333/backend-labs/meals/internal/service/models/currency"
	"github.com/corray333/backend-labs/meals/internal/service/models/meal"
	"github.com/corray333/backend-labs/meals/internal/service/models/order"
	"github.com/corray333/backend-labs/meals/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/meals/internal/transport/http/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderFromModel(t *testing.T) {
	salmon := meal.Meal{ID: uuid.New(), Name: "Salmon Nigiri", Price: decimal.RequireFromString("24.49")}
	tuna := meal.Meal{ID: uuid.New(), Name: "Tuna Roll", Price: decimal.RequireFromString("21.99")}

	o := order.Order{
		ID: uuid.New(),
		OrderItems: []orderitem.OrderItem{
			{ID: uuid.New(), MealID: salmon.ID, Quantity: 2, Meal: salmon},
			{ID: uuid.New(), MealID: tuna.ID, Quantity: 1, Meal: tuna},
		},
	}

	got := dto.OrderFromModel(o, currency.CurrencyUSD)

	assert.Equal(t, o.ID, got.ID)
	assert.Equal(t, "70.97", got.Total)
	assert.Equal(t, "USD", got.Currency)
	require.Len(t, got.OrderItems, 2)
	assert.Equal(t, "48.98", got.OrderItems[0].LineTotal)
	assert.Equal(t, "Salmon Nigiri", got.OrderItems[0].Meal.Name)
	assert.Equal(t, "24.49", got.OrderItems[0].Meal.Price)
	assert.Equal(t, "21.99", got.OrderItems[1].LineTotal)
}

func TestMealFromModel_KeepsTwoFractionDigits(t *testing.T) {
	got := dto.MealFromModel(meal.Meal{Name: "Tea", Price: decimal.RequireFromString("10")})
	assert.Equal(t, "10.00", got.Price)
}

func TestOrdersFromModel_Empty(t *testing.T) {
	got := dto.OrdersFromModel([]order.Order{}, currency.CurrencyRUB)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	single := dto.OrderFromModel(order.Order{}, currency.CurrencyRUB)
	assert.NotNil(t, single.OrderItems)
	assert.Equal(t, "0.00", single.Total)
}
