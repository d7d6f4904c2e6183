package orderitem_test

import (
	"testing"

	"github.com/corray333/backend-labs/meals/internal/service/models/meal"
	"github.com/corray333/backend-labs/meals/internal/service/models/orderitem"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderItem_LineTotal(t *testing.T) {
	oi := orderitem.OrderItem{
		Quantity: 2,
		Meal:     meal.Meal{Name: "Salmon Nigiri", Price: decimal.RequireFromString("24.49")},
	}

	assert.Equal(t, "48.98", oi.LineTotal().String())
}

func TestOrderItem_LineTotalZeroPrice(t *testing.T) {
	oi := orderitem.OrderItem{Quantity: 5, Meal: meal.Meal{Price: decimal.Zero}}

	assert.True(t, oi.LineTotal().IsZero())
}
