// Package pgtest starts a throwaway Postgres for integration tests.
package pgtest

import (
	"context"
	"testing"
	"time"

	"github.com/corray333/backend-labs/meals/internal/dal/postgres"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const image = "postgres:16-alpine"

// New starts a Postgres container, applies migrations and returns a client.
// The test is skipped with -short or when Docker is not available.
func New(t *testing.T) *postgres.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, image,
		tcpostgres.WithDatabase("meals"),
		tcpostgres.WithUsername("meals"),
		tcpostgres.WithPassword("meals"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	client, err := postgres.NewClient(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}
	t.Cleanup(client.Close)

	if err := client.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return client
}
