package meal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Meal represents an orderable catalog item.
type Meal struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
