// Package dto holds the JSON shapes of the HTTP API.
// Money leaves the service as strings with two fractional digits.
package dto

import (
	"time"

	"github.com/corray333/backend-labs/meals/internal/service/models/currency"
	"github.com/corray333/backend-labs/meals/internal/service/models/meal"
	"github.com/corray333/backend-labs/meals/internal/service/models/order"
	"github.com/corray333/backend-labs/meals/internal/service/models/orderitem"
	"github.com/google/uuid"
)

type Meal struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	MealID    uuid.UUID `json:"mealId"`
	Quantity  int       `json:"quantity"`
	Meal      Meal      `json:"meal"`
	LineTotal string    `json:"lineTotal"`
}

type Order struct {
	ID         uuid.UUID   `json:"id"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
	OrderItems []OrderItem `json:"orderItems"`
	Total      string      `json:"total"`
	Currency   string      `json:"currency"`
}

func MealFromModel(m meal.Meal) Meal {
	return Meal{
		ID:        m.ID,
		Name:      m.Name,
		Price:     currency.Format(m.Price),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func MealsFromModel(meals []meal.Meal) []Meal {
	res := make([]Meal, len(meals))
	for i := range meals {
		res[i] = MealFromModel(meals[i])
	}

	return res
}

func OrderItemFromModel(item orderitem.OrderItem) OrderItem {
	return OrderItem{
		ID:        item.ID,
		MealID:    item.MealID,
		Quantity:  item.Quantity,
		Meal:      MealFromModel(item.Meal),
		LineTotal: currency.Format(item.LineTotal()),
	}
}

// OrderFromModel renders an order; the total is summed exactly and rounded once.
func OrderFromModel(o order.Order, cur currency.Currency) Order {
	items := make([]OrderItem, len(o.OrderItems))
	for i := range o.OrderItems {
		items[i] = OrderItemFromModel(o.OrderItems[i])
	}

	return Order{
		ID:         o.ID,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
		OrderItems: items,
		Total:      currency.Format(o.Total()),
		Currency:   cur.String(),
	}
}

func OrdersFromModel(orders []order.Order, cur currency.Currency) []Order {
	res := make([]Order, len(orders))
	for i := range orders {
		res[i] = OrderFromModel(orders[i], cur)
	}

	return res
}
