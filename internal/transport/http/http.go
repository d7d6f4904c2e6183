package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/meals/api"
	"github.com/corray333/backend-labs/meals/internal/service/models/currency"
	"github.com/corray333/backend-labs/meals/internal/service/models/meal"
	"github.com/corray333/backend-labs/meals/internal/service/models/order"
	"github.com/corray333/backend-labs/meals/internal/service/models/orderitem"
	createorder "github.com/corray333/backend-labs/meals/internal/transport/http/create_order"
	"github.com/corray333/backend-labs/meals/internal/transport/http/dashboard"
	getorder "github.com/corray333/backend-labs/meals/internal/transport/http/get_order"
	listmeals "github.com/corray333/backend-labs/meals/internal/transport/http/list_meals"
	listorders "github.com/corray333/backend-labs/meals/internal/transport/http/list_orders"
	"github.com/corray333/backend-labs/meals/pkg/http/middleware/trace"
	"github.com/corray333/backend-labs/meals/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type service interface {
	ListMeals(ctx context.Context) ([]meal.Meal, error)
	ListOrders(ctx context.Context) ([]order.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (order.Order, error)
	CreateOrder(ctx context.Context, items []orderitem.CreateItem) (order.Order, error)
}

type HTTPTransport struct {
	server   *http.Server
	router   *chi.Mux
	service  service
	currency currency.Currency
}

func NewHTTPTransport(service service) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:   server,
		router:   router,
		service:  service,
		currency: currencyFromConfig(),
	}
}

// Run serves until Shutdown is called.
func (h *HTTPTransport) Run() error {
	slog.Info("HTTP server listening", "addr", h.server.Addr)

	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// Handler returns the router with all middleware applied.
func (h *HTTPTransport) Handler() http.Handler {
	return h.router
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Get("/meals", h.listMeals)
		r.Get("/orders", h.listOrders)
		r.Post("/orders", h.createOrder)
		r.Get("/orders/{id}", h.getOrder)
		r.Get("/dashboard", h.dashboard)
	})

	h.router.Get("/swagger/doc.json", serveOpenAPI)
	h.router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

func (h *HTTPTransport) listMeals(w http.ResponseWriter, r *http.Request) {
	listmeals.ListMeals(w, r, h.service)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.service, h.currency)
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.service, h.currency)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.service, h.currency)
}

func (h *HTTPTransport) dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard.Dashboard(w, r, h.service, h.currency)
}

func serveOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(api.OpenAPI); err != nil {
		slog.ErrorContext(r.Context(), "Error sending OpenAPI document", "error", err)
	}
}

func currencyFromConfig() currency.Currency {
	cur, err := currency.ParseCurrency(viper.GetString("app.currency"))
	if err != nil {
		slog.Warn("Unknown display currency, falling back to USD",
			"currency", viper.GetString("app.currency"),
		)

		return currency.CurrencyUSD
	}

	return cur
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(middleware.Recoverer)
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:              "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler:           router,
		ReadHeaderTimeout: viper.GetDuration("server.http.read_header_timeout"),
		ReadTimeout:       viper.GetDuration("server.http.read_timeout"),
		WriteTimeout:      viper.GetDuration("server.http.write_timeout"),
		IdleTimeout:       viper.GetDuration("server.http.idle_timeout"),
	}
}
