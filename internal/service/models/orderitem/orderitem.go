package orderitem

import (
	"time"

	"github.com/corray333/backend-labs/meals/internal/service/models/meal"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem represents an item within an order
type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"orderId"`
	MealID    uuid.UUID `json:"mealId"`
	Quantity  int       `json:"quantity"`
	Position  int       `json:"position"`
	Meal      meal.Meal `json:"meal"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LineTotal is the meal price multiplied by the quantity.
func (oi OrderItem) LineTotal() decimal.Decimal {
	return oi.Meal.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

// CreateItem is a single (meal, quantity) pair of a create order request.
type CreateItem struct {
	MealID   uuid.UUID `json:"mealId"`
	Quantity int       `json:"quantity"`
}
