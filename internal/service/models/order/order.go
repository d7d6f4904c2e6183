package order

import (
	"time"

	"github.com/corray333/backend-labs/meals/internal/service/models/orderitem"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order represents a customer order with its line items.
type Order struct {
	ID         uuid.UUID             `json:"id"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
	OrderItems []orderitem.OrderItem `json:"orderItems"`
}

// Total sums the line totals of all items. The result is not rounded.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.OrderItems {
		total = total.Add(item.LineTotal())
	}

	return total
}
