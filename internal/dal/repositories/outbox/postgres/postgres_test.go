package postgresrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/corray333/backend-labs/meals/internal/dal/postgres/pgtest"
	outboxrepo "github.com/corray333/backend-labs/meals/internal/dal/repositories/outbox/postgres"
	"github.com/corray333/backend-labs/meals/internal/service/models/outbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxRepository(t *testing.T) {
	client := pgtest.New(t)
	repo := outboxrepo.NewOutboxRepository(client.Pool())
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	msg, err := outbox.NewJSONMessage(
		outbox.Route{QueueName: "meals.order.created", RoutingKey: "meals.order.created", MaxRetries: 2},
		map[string]string{"orderId": "42"},
		now,
	)
	require.NoError(t, err)

	id, err := repo.Insert(ctx, msg)
	require.NoError(t, err)
	assert.Positive(t, id)

	pending, err := repo.GetPendingMessages(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, id, pending[0].ID)
	assert.JSONEq(t, `{"orderId":"42"}`, string(pending[0].Payload))

	// Not due yet after a failed attempt.
	require.NoError(t, repo.UpdateRetry(ctx, id, 1, "connection reset", now.Add(time.Minute)))
	pending, err = repo.GetPendingMessages(ctx, now, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	pending, err = repo.GetPendingMessages(ctx, now.Add(2*time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].RetryCount)
	assert.Equal(t, "connection reset", pending[0].LastError)

	// Retries exhausted.
	require.NoError(t, repo.UpdateRetry(ctx, id, 2, "connection reset", now))
	pending, err = repo.GetPendingMessages(ctx, now.Add(time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	require.NoError(t, repo.Delete(ctx, id))
}
