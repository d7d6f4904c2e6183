package outbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/meals/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/meals/internal/service/models/outbox"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

type publisher interface {
	Publish(exchange, routingKey string, msg amqp.Publishing) error
}

// Worker processes messages from the outbox table.
type Worker struct {
	outboxRepo   ioutboxrepo.IOutboxRepository
	publisher    publisher
	pollInterval time.Duration
	batchSize    int
	concurrency  int
	now          func() time.Time
	stopCh       chan struct{}
}

// NewWorker creates a new outbox worker.
func NewWorker(
	outboxRepo ioutboxrepo.IOutboxRepository,
	publisher publisher,
) *Worker {
	pollIntervalSeconds := viper.GetInt("rabbitmq.outbox.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 10
	}

	batchSize := viper.GetInt("rabbitmq.outbox.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	concurrency := viper.GetInt("rabbitmq.outbox.publish_concurrency")
	if concurrency <= 0 {
		concurrency = 1
	}

	return &Worker{
		outboxRepo:   outboxRepo,
		publisher:    publisher,
		pollInterval: time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:    batchSize,
		concurrency:  concurrency,
		now:          time.Now,
		stopCh:       make(chan struct{}),
	}
}

// Start begins processing messages from the outbox.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Outbox worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Outbox worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Outbox worker stopped")

			return
		case <-ticker.C:
			w.ProcessMessages(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// ProcessMessages publishes one batch of due messages. Published messages
// are deleted; failed ones are rescheduled with exponential backoff.
func (w *Worker) ProcessMessages(ctx context.Context) {
	messages, err := w.outboxRepo.GetPendingMessages(ctx, w.now(), w.batchSize)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to get pending messages from outbox", "error", err)

		return
	}

	if len(messages) == 0 {
		return
	}

	slog.InfoContext(ctx, "Processing outbox messages", "count", len(messages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	for _, msg := range messages {
		g.Go(func() error {
			w.processMessage(gctx, msg)

			return nil
		})
	}
	_ = g.Wait()
}

func (w *Worker) processMessage(ctx context.Context, msg outbox.OutboxMessage) {
	ctx, span := otel.Tracer("worker").Start(ctx, "OutboxWorker.Publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.Int64("outbox.id", msg.ID),
			attribute.String("messaging.destination", msg.ExchangeName),
			attribute.String("messaging.rabbitmq.routing_key", msg.RoutingKey),
		),
	)
	defer span.End()

	headers := amqp.Table{}
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier(headers))

	err := w.publisher.Publish(msg.ExchangeName, msg.RoutingKey, amqp.Publishing{
		ContentType:  msg.ContentType,
		DeliveryMode: amqp.Persistent,
		Timestamp:    msg.CreatedAt,
		Headers:      headers,
		Body:         msg.Payload,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		retryCount, nextRetryAt := msg.NextRetry(w.now())

		slog.WarnContext(ctx, "Failed to publish message from outbox, will retry",
			"outbox_id", msg.ID,
			"retry_count", retryCount,
			"max_retries", msg.MaxRetries,
			"next_retry", nextRetryAt,
			"error", err,
		)

		if err := w.outboxRepo.UpdateRetry(ctx, msg.ID, retryCount, err.Error(), nextRetryAt); err != nil {
			slog.ErrorContext(ctx, "Failed to update retry information", "outbox_id", msg.ID, "error", err)
		}

		return
	}

	if err := w.outboxRepo.Delete(ctx, msg.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to delete message from outbox after successful publish",
			"outbox_id", msg.ID,
			"error", err,
		)

		return
	}

	slog.InfoContext(ctx, "Message successfully published and removed from outbox", "outbox_id", msg.ID)
}

// headerCarrier lets the otel propagator write into AMQP headers.
type headerCarrier amqp.Table

func (c headerCarrier) Get(key string) string {
	if v, ok := c[key].(string); ok {
		return v
	}

	return ""
}

func (c headerCarrier) Set(key, value string) {
	c[key] = value
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}

	return keys
}
