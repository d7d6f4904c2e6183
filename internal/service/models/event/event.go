package event

import (
	"time"

	"github.com/corray333/backend-labs/meals/internal/service/models/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderCreatedRoutingKey is the routing key of OrderCreated messages.
const OrderCreatedRoutingKey = "meals.order.created"

// OrderCreated signals that an order was committed and order listings are stale.
type OrderCreated struct {
	OrderID   uuid.UUID       `json:"orderId"`
	CreatedAt time.Time       `json:"createdAt"`
	ItemCount int             `json:"itemCount"`
	Total     decimal.Decimal `json:"total"`
}

// NewOrderCreated builds the event for a freshly created order.
func NewOrderCreated(o order.Order) OrderCreated {
	return OrderCreated{
		OrderID:   o.ID,
		CreatedAt: o.CreatedAt,
		ItemCount: len(o.OrderItems),
		Total:     o.Total(),
	}
}
