package getorder

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/meals/internal/service/errs"
	"github.com/corray333/backend-labs/meals/internal/service/models/currency"
	"github.com/corray333/backend-labs/meals/internal/service/models/order"
	"github.com/corray333/backend-labs/meals/internal/transport/http/dto"
	"github.com/corray333/backend-labs/meals/internal/transport/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type service interface {
	GetOrder(ctx context.Context, id uuid.UUID) (order.Order, error)
}

// GetOrder handles GET /api/orders/{id}.
func GetOrder(w http.ResponseWriter, r *http.Request, service service, cur currency.Currency) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, errs.Validation("invalid order id: %v", err))

		return
	}

	o, err := service.GetOrder(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.JSON(w, r, http.StatusOK, dto.OrderFromModel(o, cur))
}
