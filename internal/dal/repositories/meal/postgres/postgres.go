package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/meals/internal/dal/postgres"
	"github.com/corray333/backend-labs/meals/internal/service/models/meal"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MealDal represents meal data access layer model.
type MealDal struct {
	Id        uuid.UUID       `db:"id"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// ToModel converts MealDal to service layer Meal model.
func (m *MealDal) ToModel() meal.Meal {
	return meal.Meal{
		ID:        m.Id,
		Name:      m.Name,
		Price:     m.Price,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// MealDalFromModel converts service layer Meal model to MealDal.
func MealDalFromModel(m *meal.Meal) *MealDal {
	return &MealDal{
		Id:        m.ID,
		Name:      m.Name,
		Price:     m.Price,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

var mealColumns = []string{"id", "name", "price", "created_at", "updated_at"}

// PostgresMealRepository represents a Postgres meal repository.
type PostgresMealRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresMealRepository creates a new Postgres meal repository.
func NewPostgresMealRepository(conn postgres.Conn) *PostgresMealRepository {
	return &PostgresMealRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// List returns the whole catalog sorted by name.
// Byte-order collation keeps the order independent of the database locale.
func (r *PostgresMealRepository) List(ctx context.Context) ([]meal.Meal, error) {
	return r.query(ctx, r.sb.Select(mealColumns...).
		From("meals").
		OrderBy(`name COLLATE "C" ASC`, "id ASC"))
}

// Query retrieves meals based on filter criteria.
func (r *PostgresMealRepository) Query(ctx context.Context, filter *meal.QueryMealsModel) ([]meal.Meal, error) {
	query := r.sb.Select(mealColumns...).From("meals")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	return r.query(ctx, query.OrderBy(`name COLLATE "C" ASC`, "id ASC"))
}

// Upsert inserts meals or updates the price of meals with the same name.
func (r *PostgresMealRepository) Upsert(ctx context.Context, meals []meal.Meal) ([]meal.Meal, error) {
	if len(meals) == 0 {
		return []meal.Meal{}, nil
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	query := r.sb.Insert("meals").Columns(mealColumns...)
	for i := range meals {
		dal := MealDalFromModel(&meals[i])
		if dal.CreatedAt.IsZero() {
			dal.CreatedAt = now
		}
		if dal.UpdatedAt.IsZero() {
			dal.UpdatedAt = now
		}
		query = query.Values(dal.Id, dal.Name, dal.Price, dal.CreatedAt, dal.UpdatedAt)
	}
	query = query.Suffix(`ON CONFLICT (name) DO UPDATE
		SET price = EXCLUDED.price, updated_at = EXCLUDED.updated_at
		RETURNING id, name, price, created_at, updated_at`)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build upsert query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert meals: %w", err)
	}
	defer rows.Close()

	result := make([]meal.Meal, 0, len(meals))
	for rows.Next() {
		var dal MealDal
		if err := rows.Scan(&dal.Id, &dal.Name, &dal.Price, &dal.CreatedAt, &dal.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		result = append(result, dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

func (r *PostgresMealRepository) query(ctx context.Context, query sq.SelectBuilder) ([]meal.Meal, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query meals: %w", err)
	}
	defer rows.Close()

	result := []meal.Meal{}
	for rows.Next() {
		var dal MealDal
		if err := rows.Scan(&dal.Id, &dal.Name, &dal.Price, &dal.CreatedAt, &dal.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		result = append(result, dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
