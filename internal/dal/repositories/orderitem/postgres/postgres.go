package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/meals/internal/dal/postgres"
	"github.com/corray333/backend-labs/meals/internal/service/models/meal"
	"github.com/corray333/backend-labs/meals/internal/service/models/orderitem"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemDal represents order item data access layer model.
type OrderItemDal struct {
	Id        uuid.UUID `db:"id"`
	OrderId   uuid.UUID `db:"order_id"`
	MealId    uuid.UUID `db:"meal_id"`
	Quantity  int       `db:"quantity"`
	Position  int       `db:"position"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ToModel converts OrderItemDal to service layer OrderItem model.
func (oi *OrderItemDal) ToModel() orderitem.OrderItem {
	return orderitem.OrderItem{
		ID:        oi.Id,
		OrderID:   oi.OrderId,
		MealID:    oi.MealId,
		Quantity:  oi.Quantity,
		Position:  oi.Position,
		CreatedAt: oi.CreatedAt,
		UpdatedAt: oi.UpdatedAt,
	}
}

// OrderItemDalFromModel converts service layer OrderItem model to OrderItemDal.
func OrderItemDalFromModel(oi *orderitem.OrderItem) *OrderItemDal {
	return &OrderItemDal{
		Id:        oi.ID,
		OrderId:   oi.OrderID,
		MealId:    oi.MealID,
		Quantity:  oi.Quantity,
		Position:  oi.Position,
		CreatedAt: oi.CreatedAt,
		UpdatedAt: oi.UpdatedAt,
	}
}

// joinedMealDal holds the meal columns joined to an order item row.
type joinedMealDal struct {
	Name      string          `db:"meal_name"`
	Price     decimal.Decimal `db:"meal_price"`
	CreatedAt time.Time       `db:"meal_created_at"`
	UpdatedAt time.Time       `db:"meal_updated_at"`
}

// PostgresOrderItemRepository represents a Postgres order item repository.
type PostgresOrderItemRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn postgres.Conn) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert inserts order items in one statement and returns the stored rows.
// Meals are not resolved; callers already hold them.
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	orderItems []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if len(orderItems) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	query := r.sb.Insert("order_items").
		Columns("id", "order_id", "meal_id", "quantity", "position", "created_at", "updated_at")
	for i := range orderItems {
		dal := OrderItemDalFromModel(&orderItems[i])
		query = query.Values(
			dal.Id,
			dal.OrderId,
			dal.MealId,
			dal.Quantity,
			dal.Position,
			dal.CreatedAt,
			dal.UpdatedAt,
		)
	}
	query = query.Suffix("RETURNING id, order_id, meal_id, quantity, position, created_at, updated_at")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	result := make([]orderitem.OrderItem, 0, len(orderItems))
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.MealId,
			&dal.Quantity,
			&dal.Position,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Query retrieves order items joined with their meals, ordered by order and position.
func (r *PostgresOrderItemRepository) Query(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	query := r.sb.
		Select(
			"oi.id",
			"oi.order_id",
			"oi.meal_id",
			"oi.quantity",
			"oi.position",
			"oi.created_at",
			"oi.updated_at",
			"m.name AS meal_name",
			"m.price AS meal_price",
			"m.created_at AS meal_created_at",
			"m.updated_at AS meal_updated_at",
		).
		From("order_items oi").
		Join("meals m ON m.id = oi.meal_id")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"oi.id": filter.Ids})
	}

	if len(filter.OrderIds) > 0 {
		query = query.Where(sq.Eq{"oi.order_id": filter.OrderIds})
	}

	if len(filter.MealIds) > 0 {
		query = query.Where(sq.Eq{"oi.meal_id": filter.MealIds})
	}

	sql, args, err := query.OrderBy("oi.order_id", "oi.position").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	result := []orderitem.OrderItem{}
	for rows.Next() {
		var (
			dal     OrderItemDal
			mealDal joinedMealDal
		)

		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.MealId,
			&dal.Quantity,
			&dal.Position,
			&dal.CreatedAt,
			&dal.UpdatedAt,
			&mealDal.Name,
			&mealDal.Price,
			&mealDal.CreatedAt,
			&mealDal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		item := dal.ToModel()
		item.Meal = meal.Meal{
			ID:        dal.MealId,
			Name:      mealDal.Name,
			Price:     mealDal.Price,
			CreatedAt: mealDal.CreatedAt,
			UpdatedAt: mealDal.UpdatedAt,
		}
		result = append(result, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
