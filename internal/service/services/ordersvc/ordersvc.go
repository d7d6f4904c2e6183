package ordersvc

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/corray333/backend-labs/meals/internal/dal/interfaces/imealrepo"
	"github.com/corray333/backend-labs/meals/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backend-labs/meals/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/meals/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/meals/internal/dal/postgres"
	"github.com/corray333/backend-labs/meals/internal/dal/uow"
	"github.com/corray333/backend-labs/meals/internal/service/errs"
	"github.com/corray333/backend-labs/meals/internal/service/models/event"
	"github.com/corray333/backend-labs/meals/internal/service/models/meal"
	"github.com/corray333/backend-labs/meals/internal/service/models/order"
	"github.com/corray333/backend-labs/meals/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/meals/internal/service/models/outbox"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// OrderService is a service for managing orders.
type OrderService struct {
	newUOW func() unitOfWork
	route  outbox.Route
	now    func() time.Time
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	MealRepository() imealrepo.IMealRepository
	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		route: outbox.Route{
			QueueName:  event.OrderCreatedRoutingKey,
			RoutingKey: event.OrderCreatedRoutingKey,
			MaxRetries: 5,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		panic("ordersvc: postgres client is required")
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// WithEventRoute sets where order.created events are published.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithEventRoute(route outbox.Route) option {
	return func(s *OrderService) {
		s.route = route
	}
}

func withUnitOfWork(newUOW func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = newUOW
	}
}

func withClock(now func() time.Time) option {
	return func(s *OrderService) {
		s.now = now
	}
}

// CreateOrder stores an order with one line item per input pair.
// Items referencing the same meal twice are kept as separate line items.
// Input is validated before anything is written; the order, its items and
// the order.created outbox message commit together or not at all.
func (s *OrderService) CreateOrder(
	ctx context.Context,
	items []orderitem.CreateItem,
) (_ order.Order, err error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.CreateOrder")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := validateItems(items); err != nil {
		return order.Order{}, err
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, errs.Storage("begin transaction", err)
	}
	defer func() {
		if err := work.Rollback(ctx); err != nil {
			slog.ErrorContext(ctx, "Failed to rollback order transaction", "error", err)
		}
	}()

	meals, err := resolveMeals(ctx, work.MealRepository(), items)
	if err != nil {
		return order.Order{}, err
	}

	now := s.now().UTC().Truncate(time.Microsecond)
	created := order.Order{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	orderItems := make([]orderitem.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = orderitem.OrderItem{
			ID:        uuid.New(),
			OrderID:   created.ID,
			MealID:    item.MealID,
			Quantity:  item.Quantity,
			Position:  i,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	created, err = work.OrderRepository().Insert(ctx, created)
	if err != nil {
		return order.Order{}, errs.Storage("insert order", err)
	}

	orderItems, err = work.OrderItemRepository().BulkInsert(ctx, orderItems)
	if err != nil {
		return order.Order{}, errs.Storage("insert order items", err)
	}
	if len(orderItems) != len(items) {
		return order.Order{}, errs.Storage("insert order items",
			fmt.Errorf("stored %d of %d items", len(orderItems), len(items)))
	}

	slices.SortFunc(orderItems, func(a, b orderitem.OrderItem) int {
		return a.Position - b.Position
	})
	for i := range orderItems {
		orderItems[i].Meal = meals[orderItems[i].MealID]
	}
	created.OrderItems = orderItems

	msg, err := outbox.NewJSONMessage(s.route, event.NewOrderCreated(created), now)
	if err != nil {
		return order.Order{}, err
	}
	if _, err := work.OutboxRepository().Insert(ctx, msg); err != nil {
		return order.Order{}, errs.Storage("insert outbox message", err)
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, errs.Storage("commit order", err)
	}

	span.SetAttributes(
		attribute.String("order.id", created.ID.String()),
		attribute.Int("order.items", len(created.OrderItems)),
	)
	slog.InfoContext(ctx, "Order created",
		"order_id", created.ID,
		"items_count", len(created.OrderItems),
		"total", created.Total().String(),
	)

	return created, nil
}

// ListOrders returns all orders newest first, each with its items and the
// current name and price of every referenced meal.
func (s *OrderService) ListOrders(ctx context.Context) ([]order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.ListOrders")
	defer span.End()

	orders, err := s.queryOrders(ctx, &order.QueryOrdersModel{})
	if err != nil {
		span.RecordError(err)

		return nil, err
	}

	span.SetAttributes(attribute.Int("orders.count", len(orders)))

	return orders, nil
}

// GetOrder returns a single order or errs.ErrNotFound.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.GetOrder")
	defer span.End()

	orders, err := s.queryOrders(ctx, &order.QueryOrdersModel{Ids: []uuid.UUID{id}})
	if err != nil {
		span.RecordError(err)

		return order.Order{}, err
	}

	if len(orders) == 0 {
		return order.Order{}, fmt.Errorf("%w: order %s", errs.ErrNotFound, id)
	}

	return orders[0], nil
}

func (s *OrderService) queryOrders(ctx context.Context, query *order.QueryOrdersModel) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, query)
	if err != nil {
		return nil, errs.Storage("query orders", err)
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	byID := make(map[uuid.UUID]int, len(orders))
	orderItemQuery := &orderitem.QueryOrderItemsModel{}
	for i, o := range orders {
		byID[o.ID] = i
		orderItemQuery.OrderIds = append(orderItemQuery.OrderIds, o.ID)
	}

	orderItems, err := work.OrderItemRepository().Query(ctx, orderItemQuery)
	if err != nil {
		return nil, errs.Storage("query order items", err)
	}

	for _, item := range orderItems {
		if i, ok := byID[item.OrderID]; ok {
			orders[i].OrderItems = append(orders[i].OrderItems, item)
		}
	}

	return orders, nil
}

func validateItems(items []orderitem.CreateItem) error {
	if len(items) == 0 {
		return errs.Validation("order must contain at least one item")
	}

	for i, item := range items {
		if item.MealID == uuid.Nil {
			return errs.Validation("item %d: meal id is required", i)
		}
		if item.Quantity < 1 {
			return errs.Validation("item %d: quantity must be at least 1, got %d", i, item.Quantity)
		}
	}

	return nil
}

// resolveMeals loads every referenced meal and fails with a validation
// error on the first id that is not in the catalog.
func resolveMeals(
	ctx context.Context,
	repo imealrepo.IMealRepository,
	items []orderitem.CreateItem,
) (map[uuid.UUID]meal.Meal, error) {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.MealID]; ok {
			continue
		}
		seen[item.MealID] = struct{}{}
		ids = append(ids, item.MealID)
	}

	found, err := repo.Query(ctx, &meal.QueryMealsModel{Ids: ids})
	if err != nil {
		return nil, errs.Storage("query meals", err)
	}

	meals := make(map[uuid.UUID]meal.Meal, len(found))
	for _, m := range found {
		meals[m.ID] = m
	}

	for i, item := range items {
		if _, ok := meals[item.MealID]; !ok {
			return nil, errs.Validation("item %d: unknown meal %s", i, item.MealID)
		}
	}

	return meals, nil
}
