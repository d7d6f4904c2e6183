package dashboard

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/meals/internal/service/models/currency"
	"github.com/corray333/backend-labs/meals/internal/service/models/meal"
	"github.com/corray333/backend-labs/meals/internal/service/models/order"
	"github.com/corray333/backend-labs/meals/internal/transport/http/dto"
	"github.com/corray333/backend-labs/meals/internal/transport/http/response"
	"golang.org/x/sync/errgroup"
)

type service interface {
	ListMeals(ctx context.Context) ([]meal.Meal, error)
	ListOrders(ctx context.Context) ([]order.Order, error)
}

type dashboardResponse struct {
	Meals  []dto.Meal  `json:"meals"`
	Orders []dto.Order `json:"orders"`
}

// Dashboard handles GET /api/dashboard: the catalog and the order history in one response.
func Dashboard(w http.ResponseWriter, r *http.Request, service service, cur currency.Currency) {
	var (
		meals  []meal.Meal
		orders []order.Order
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		meals, err = service.ListMeals(ctx)

		return err
	})
	g.Go(func() error {
		var err error
		orders, err = service.ListOrders(ctx)

		return err
	})

	if err := g.Wait(); err != nil {
		response.Error(w, r, err)

		return
	}

	response.JSON(w, r, http.StatusOK, dashboardResponse{
		Meals:  dto.MealsFromModel(meals),
		Orders: dto.OrdersFromModel(orders, cur),
	})
}
