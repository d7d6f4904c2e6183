package meal

import "github.com/google/uuid"

// QueryMealsModel represents filter parameters for querying meals.
type QueryMealsModel struct {
	Ids []uuid.UUID `json:"ids,omitempty"`
}
