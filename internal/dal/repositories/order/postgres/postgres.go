package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/meals/internal/dal/postgres"
	"github.com/corray333/backend-labs/meals/internal/service/models/order"
	"github.com/corray333/backend-labs/meals/internal/service/models/orderitem"
	"github.com/google/uuid"
)

// OrderDal represents order data access layer model
type OrderDal struct {
	Id        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to service layer Order model
func (o *OrderDal) ToModel() order.Order {
	return order.Order{
		ID:         o.Id,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
		OrderItems: []orderitem.OrderItem{}, // Will be populated separately
	}
}

// OrderDalFromModel converts service layer Order model to OrderDal
func OrderDalFromModel(o *order.Order) *OrderDal {
	return &OrderDal{
		Id:        o.ID,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

type PostgresOrderRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

func NewPostgresOrderRepository(conn postgres.Conn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert stores the order row. Items are inserted by the order item repository.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	dal := OrderDalFromModel(&o)

	sql, args, err := r.sb.Insert("orders").
		Columns("id", "created_at", "updated_at").
		Values(dal.Id, dal.CreatedAt, dal.UpdatedAt).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	var stored OrderDal
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&stored.Id, &stored.CreatedAt, &stored.UpdatedAt); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	result := stored.ToModel()
	result.OrderItems = append(result.OrderItems, o.OrderItems...)

	return result, nil
}

// Query retrieves orders based on filter criteria, newest first
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	query := r.sb.
		Select("id", "created_at", "updated_at").
		From("orders").
		OrderBy("created_at DESC", "id")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	result := []order.Order{}
	for rows.Next() {
		var dal OrderDal
		if err := rows.Scan(&dal.Id, &dal.CreatedAt, &dal.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
