package outbox

import (
	"encoding/json"
	"fmt"
	"time"
)

const contentTypeJSON = "application/json"

// OutboxMessage is an event waiting to be published to RabbitMQ.
// It is written in the same transaction as the change it describes.
type OutboxMessage struct {
	ID           int64
	QueueName    string
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}

// Route describes where a message is published.
type Route struct {
	QueueName    string
	ExchangeName string
	RoutingKey   string
	MaxRetries   int
}

// NewJSONMessage marshals payload and returns a message that is due immediately.
func NewJSONMessage(route Route, payload any, now time.Time) (OutboxMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return OutboxMessage{}, fmt.Errorf("failed to marshal outbox payload: %w", err)
	}

	return OutboxMessage{
		QueueName:    route.QueueName,
		ExchangeName: route.ExchangeName,
		RoutingKey:   route.RoutingKey,
		Payload:      body,
		ContentType:  contentTypeJSON,
		MaxRetries:   route.MaxRetries,
		CreatedAt:    now,
		UpdatedAt:    now,
		NextRetryAt:  now,
	}, nil
}

// NextRetry returns the retry count and due time after a failed publish.
// The delay doubles with every attempt: 60s, 120s, 240s, ...
func (m OutboxMessage) NextRetry(now time.Time) (int, time.Time) {
	retryCount := m.RetryCount + 1
	backoff := time.Duration(1<<retryCount) * 30 * time.Second

	return retryCount, now.Add(backoff)
}
