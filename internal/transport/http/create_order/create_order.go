package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/meals/internal/service/errs"
	"github.com/corray333/backend-labs/meals/internal/service/models/currency"
	"github.com/corray333/backend-labs/meals/internal/service/models/order"
	"github.com/corray333/backend-labs/meals/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/meals/internal/transport/http/dto"
	"github.com/corray333/backend-labs/meals/internal/transport/http/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

var validate = validator.New()

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, items []orderitem.CreateItem) (order.Order, error)
}

// itemInCreateOrderRequest represents an item in a create order request.
type itemInCreateOrderRequest struct {
	MealID   uuid.UUID `json:"mealId"   validate:"required"`
	Quantity int       `json:"quantity" validate:"gte=1"`
}

// createOrderRequest represents a create order request.
type createOrderRequest struct {
	Items []itemInCreateOrderRequest `json:"items" validate:"required,min=1,dive"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	return validate.Struct(r)
}

// toModel keeps the items in request order; duplicates stay separate.
func (r *createOrderRequest) toModel() []orderitem.CreateItem {
	items := make([]orderitem.CreateItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = orderitem.CreateItem{
			MealID:   item.MealID,
			Quantity: item.Quantity,
		}
	}

	return items
}

// CreateOrder handles POST /api/orders.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service, cur currency.Currency) {
	req := createOrderRequest{}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		slog.WarnContext(r.Context(), "Error decoding request body for create order", "error", err)
		response.Error(w, r, errs.Validation("invalid request body: %v", err))

		return
	}

	if err := req.Validate(); err != nil {
		slog.WarnContext(r.Context(), "Error validating request body for create order", "error", err)
		response.Error(w, r, errs.Validation("%v", err))

		return
	}

	created, err := service.CreateOrder(r.Context(), req.toModel())
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.JSON(w, r, http.StatusCreated, dto.OrderFromModel(created, cur))
}
