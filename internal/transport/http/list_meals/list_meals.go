package listmeals

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/meals/internal/service/models/meal"
	"github.com/corray333/backend-labs/meals/internal/transport/http/dto"
	"github.com/corray333/backend-labs/meals/internal/transport/http/response"
)

type service interface {
	ListMeals(ctx context.Context) ([]meal.Meal, error)
}

// ListMeals handles GET /api/meals.
func ListMeals(w http.ResponseWriter, r *http.Request, service service) {
	meals, err := service.ListMeals(r.Context())
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.JSON(w, r, http.StatusOK, dto.MealsFromModel(meals))
}
