package listorders

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/meals/internal/service/models/currency"
	"github.com/corray333/backend-labs/meals/internal/service/models/order"
	"github.com/corray333/backend-labs/meals/internal/transport/http/dto"
	"github.com/corray333/backend-labs/meals/internal/transport/http/response"
)

type service interface {
	ListOrders(ctx context.Context) ([]order.Order, error)
}

// ListOrders handles GET /api/orders. Orders are returned newest first.
func ListOrders(w http.ResponseWriter, r *http.Request, service service, cur currency.Currency) {
	orders, err := service.ListOrders(r.Context())
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.JSON(w, r, http.StatusOK, dto.OrdersFromModel(orders, cur))
}
