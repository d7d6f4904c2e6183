package orderitem

import "github.com/google/uuid"

// QueryOrderItemsModel represents filter parameters for querying order items.
type QueryOrderItemsModel struct {
	Ids      []uuid.UUID `json:"ids,omitempty"`
	OrderIds []uuid.UUID `json:"orderIds,omitempty"`
	MealIds  []uuid.UUID `json:"mealIds,omitempty"`
}
