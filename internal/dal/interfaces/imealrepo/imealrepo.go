package imealrepo

import (
	"context"

	"github.com/corray333/backend-labs/meals/internal/service/models/meal"
)

// IMealRepository is an interface for meal postgres repository.
type IMealRepository interface {
	List(ctx context.Context) ([]meal.Meal, error)
	Query(ctx context.Context, filter *meal.QueryMealsModel) ([]meal.Meal, error)
	Upsert(ctx context.Context, meals []meal.Meal) ([]meal.Meal, error)
}
