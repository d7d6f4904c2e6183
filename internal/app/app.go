package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/corray333/backend-labs/meals/internal/dal/postgres"
	"github.com/corray333/backend-labs/meals/internal/dal/rabbitmq"
	mealrepo "github.com/corray333/backend-labs/meals/internal/dal/repositories/meal/postgres"
	outboxrepo "github.com/corray333/backend-labs/meals/internal/dal/repositories/outbox/postgres"
	"github.com/corray333/backend-labs/meals/internal/otel"
	"github.com/corray333/backend-labs/meals/internal/service/models/outbox"
	"github.com/corray333/backend-labs/meals/internal/service/services/catalogsvc"
	"github.com/corray333/backend-labs/meals/internal/service/services/ordersvc"
	httptransport "github.com/corray333/backend-labs/meals/internal/transport/http"
	outboxworker "github.com/corray333/backend-labs/meals/internal/worker/outbox"
	"github.com/spf13/viper"
)

// services exposes both services to the HTTP transport.
type services struct {
	*catalogsvc.CatalogService
	*ordersvc.OrderService
}

// App represents the application.
type App struct {
	catalogSvc     *catalogsvc.CatalogService
	orderSvc       *ordersvc.OrderService
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	rabbitMqClient *rabbitmq.Client
	postgresClient *postgres.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
// RabbitMQ is optional: with rabbitmq.enabled off order events stay in the outbox table.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()
	postgresClient := postgres.MustNewClient()

	route := outbox.Route{
		QueueName:    viper.GetString("rabbitmq.order_created.queue"),
		ExchangeName: viper.GetString("rabbitmq.exchange"),
		RoutingKey:   viper.GetString("rabbitmq.order_created.routing_key"),
		MaxRetries:   viper.GetInt("rabbitmq.order_created.max_retries"),
	}

	catalogSvc := catalogsvc.MustNewCatalogService(
		catalogsvc.WithMealRepository(mealrepo.NewPostgresMealRepository(postgresClient.Pool())),
	)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
		ordersvc.WithEventRoute(route),
	)

	transport := httptransport.NewHTTPTransport(services{
		CatalogService: catalogSvc,
		OrderService:   orderSvc,
	})
	transport.RegisterRoutes()

	a := &App{
		catalogSvc:     catalogSvc,
		orderSvc:       orderSvc,
		transport:      transport,
		postgresClient: postgresClient,
		otelController: otelController,
	}

	if viper.GetBool("rabbitmq.enabled") {
		a.rabbitMqClient = rabbitmq.MustNewClient()

		if route.ExchangeName == "" {
			if _, err := a.rabbitMqClient.DeclareQueue(rabbitmq.DeclareQueueConfig{
				Name:    route.QueueName,
				Durable: true,
			}); err != nil {
				panic(err)
			}
		}

		a.outboxWorker = outboxworker.NewWorker(
			outboxrepo.NewOutboxRepository(postgresClient.Pool()),
			a.rabbitMqClient,
		)
	}

	return a
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
			select {
			case stop <- syscall.SIGTERM:
			default:
			}
		}
	}()

	if a.outboxWorker != nil {
		go func() {
			slog.Info("Starting outbox worker")
			a.outboxWorker.Start(ctx)
		}()
	}

	<-stop
	slog.Info("Shutdown signal received")
	cancel()

	a.gracefulShutdown()
}

// gracefulShutdown stops the HTTP server first so no order is accepted after
// the worker is gone, then closes RabbitMQ, Postgres and the tracer provider.
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), viper.GetDuration("server.http.shutdown_timeout"))
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if a.outboxWorker != nil {
		a.outboxWorker.Stop()
		slog.Info("Outbox worker stopped gracefully")
	}

	if a.rabbitMqClient != nil {
		if err := a.rabbitMqClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		} else {
			slog.Info("RabbitMQ connection closed gracefully")
		}
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(ctx); err != nil {
		slog.Error("Otel trace provider connection close error", "error", err)
	} else {
		slog.Info("Otel trace provider connection closed gracefully")
	}

	select {
	case <-ctx.Done():
		slog.Warn("Shutdown timeout exceeded")
	default:
		slog.Info("Application shutdown complete")
	}
}
