package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/corray333/backend-labs/meals/migrations"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/viper"
)

// Conn is implemented by both *pgxpool.Pool and pgx.Tx, so repositories
// work the same inside and outside a transaction.
type Conn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Client represents a Postgres client.
type Client struct {
	pool *pgxpool.Pool
}

// Pool returns the underlying connection pool.
func (p *Client) Pool() *pgxpool.Pool {
	return p.pool
}

// Close closes the database connection for graceful shutdown.
func (p *Client) Close() {
	p.pool.Close()
}

// DSNFromEnv builds the connection string from MEALS_PG_* variables.
func DSNFromEnv() string {
	port := os.Getenv("MEALS_PG_PORT")
	if port == "" {
		port = "5432"
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		os.Getenv("MEALS_PG_HOST"),
		port,
		os.Getenv("MEALS_PG_USER"),
		os.Getenv("MEALS_PG_PASSWORD"),
		os.Getenv("MEALS_PG_DB"),
		viper.GetString("postgres.sslmode"),
	)
}

// NewClient opens a pool for connStr and checks that the database answers.
func NewClient(ctx context.Context, connStr string) (*Client, error) {
	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}

	if maxConns := viper.GetInt32("postgres.max_conns"); maxConns > 0 {
		config.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return &Client{
		pool: pool,
	}, nil
}

// MustNewClient creates a new Postgres client from the environment.
// Migrations are applied when postgres.migrate_on_start is set.
func MustNewClient() *Client {
	ctx := context.Background()

	client, err := NewClient(ctx, DSNFromEnv())
	if err != nil {
		panic(err)
	}

	if viper.GetBool("postgres.migrate_on_start") {
		if err := client.Migrate(ctx); err != nil {
			panic(err)
		}
	}

	return client
}

// Migrate applies the embedded goose migrations.
func (p *Client) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	db := stdlib.OpenDBFromPool(p.pool)
	if err := goose.UpContext(ctx, db, "."); err != nil && !errors.Is(err, goose.ErrNoNextVersion) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	slog.Info("Postgres migrations applied")

	return nil
}
