package outbox_test

import (
	"testing"
	"time"

	"github.com/corray333/backend-labs/meals/internal/service/models/outbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONMessage(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	route := outbox.Route{QueueName: "q", RoutingKey: "rk", MaxRetries: 5}

	msg, err := outbox.NewJSONMessage(route, map[string]int{"itemCount": 2}, now)
	require.NoError(t, err)

	assert.Equal(t, "q", msg.QueueName)
	assert.Equal(t, "rk", msg.RoutingKey)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, 5, msg.MaxRetries)
	assert.JSONEq(t, `{"itemCount":2}`, string(msg.Payload))
	assert.Equal(t, now, msg.NextRetryAt)
}

func TestNewJSONMessage_MarshalError(t *testing.T) {
	_, err := outbox.NewJSONMessage(outbox.Route{}, make(chan int), time.Now())
	assert.Error(t, err)
}

func TestOutboxMessage_NextRetry(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	count, at := outbox.OutboxMessage{RetryCount: 0}.NextRetry(now)
	assert.Equal(t, 1, count)
	assert.Equal(t, now.Add(60*time.Second), at)

	count, at = outbox.OutboxMessage{RetryCount: 2}.NextRetry(now)
	assert.Equal(t, 3, count)
	assert.Equal(t, now.Add(240*time.Second), at)
}
