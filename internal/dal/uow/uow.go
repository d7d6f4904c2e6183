package uow

import (
	"context"
	"errors"
	"fmt"

	"github.com/corray333/backend-labs/meals/internal/dal/interfaces/imealrepo"
	"github.com/corray333/backend-labs/meals/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backend-labs/meals/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/meals/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/meals/internal/dal/postgres"
	mealrepo "github.com/corray333/backend-labs/meals/internal/dal/repositories/meal/postgres"
	orderrepo "github.com/corray333/backend-labs/meals/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/corray333/backend-labs/meals/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/corray333/backend-labs/meals/internal/dal/repositories/outbox/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UnitOfWork groups the repositories of one request. Until Begin is called
// the repositories run on the pool; after Begin they share one transaction.
type UnitOfWork struct {
	pool          *pgxpool.Pool
	tx            pgx.Tx
	mealRepo      imealrepo.IMealRepository
	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
	outboxRepo    ioutboxrepo.IOutboxRepository
}

// NewUnitOfWork creates a unit of work on top of the client's pool.
func NewUnitOfWork(client *postgres.Client) *UnitOfWork {
	u := &UnitOfWork{pool: client.Pool()}
	u.bind(client.Pool())

	return u
}

func (u *UnitOfWork) bind(conn postgres.Conn) {
	u.mealRepo = mealrepo.NewPostgresMealRepository(conn)
	u.orderRepo = orderrepo.NewPostgresOrderRepository(conn)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(conn)
	u.outboxRepo = outboxrepo.NewOutboxRepository(conn)
}

func (u *UnitOfWork) MealRepository() imealrepo.IMealRepository {
	return u.mealRepo
}

func (u *UnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *UnitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *UnitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

// Begin starts a transaction and rebinds every repository to it.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return errors.New("transaction already started")
	}

	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	if err := u.tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Rollback aborts the transaction. It is safe to call after Commit.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	if err := u.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}
