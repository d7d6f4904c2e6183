package order_test

import (
	"testing"

	"github.com/corray333/backend-labs/meals/internal/service/models/meal"
	"github.com/corray333/backend-labs/meals/internal/service/models/order"
	"github.com/corray333/backend-labs/meals/internal/service/models/orderitem"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(price string, qty int) orderitem.OrderItem {
	return orderitem.OrderItem{
		Quantity: qty,
		Meal:     meal.Meal{Price: decimal.RequireFromString(price)},
	}
}

func TestOrder_Total(t *testing.T) {
	o := order.Order{OrderItems: []orderitem.OrderItem{
		item("24.49", 2),
		item("21.99", 1),
	}}

	assert.True(t, decimal.RequireFromString("70.97").Equal(o.Total()), o.Total().String())
}

func TestOrder_TotalEmpty(t *testing.T) {
	assert.True(t, order.Order{}.Total().IsZero())
}

func TestOrder_TotalNoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 drifts in binary floating point.
	o := order.Order{OrderItems: []orderitem.OrderItem{
		item("0.10", 1),
		item("0.20", 1),
	}}

	assert.Equal(t, "0.3", o.Total().String())
}

func TestOrder_TotalKeepsPrecision(t *testing.T) {
	o := order.Order{OrderItems: []orderitem.OrderItem{
		item("0.333", 3),
	}}

	assert.Equal(t, "0.999", o.Total().String())
}
