package catalogsvc

import (
	"context"
	"log/slog"

	"github.com/corray333/backend-labs/meals/internal/dal/interfaces/imealrepo"
	"github.com/corray333/backend-labs/meals/internal/service/errs"
	"github.com/corray333/backend-labs/meals/internal/service/models/meal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// CatalogService reads the meal catalog.
type CatalogService struct {
	mealRepo imealrepo.IMealRepository
}

// option is a function that configures the CatalogService.
type option func(*CatalogService)

// MustNewCatalogService creates a new CatalogService.
func MustNewCatalogService(opts ...option) *CatalogService {
	s := &CatalogService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.mealRepo == nil {
		panic("catalogsvc: meal repository is required")
	}

	return s
}

// WithMealRepository sets the meal repository for the CatalogService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMealRepository(repo imealrepo.IMealRepository) option {
	return func(s *CatalogService) {
		s.mealRepo = repo
	}
}

// ListMeals returns every meal sorted by name. An empty catalog is not an error.
func (s *CatalogService) ListMeals(ctx context.Context) ([]meal.Meal, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "CatalogService.ListMeals")
	defer span.End()

	meals, err := s.mealRepo.List(ctx)
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "Failed to list meals", "error", err)

		return nil, errs.Storage("list meals", err)
	}

	span.SetAttributes(attribute.Int("meals.count", len(meals)))

	return meals, nil
}
