package ioutboxrepo

import (
	"context"
	"time"

	"github.com/corray333/backend-labs/meals/internal/service/models/outbox"
)

// IOutboxRepository defines the interface for outbox operations.
type IOutboxRepository interface {
	// Insert stores a message, normally inside the transaction of the change it announces
	Insert(ctx context.Context, msg outbox.OutboxMessage) (int64, error)

	// GetPendingMessages retrieves messages due at now that still have retries left
	GetPendingMessages(ctx context.Context, now time.Time, limit int) ([]outbox.OutboxMessage, error)

	// Delete removes a message after it was published
	Delete(ctx context.Context, id int64) error

	// UpdateRetry reschedules a message after a failed publish
	UpdateRetry(
		ctx context.Context,
		id int64,
		retryCount int,
		lastError string,
		nextRetryAt time.Time,
	) error
}
