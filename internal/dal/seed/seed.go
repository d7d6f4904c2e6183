// Package seed loads the initial meal catalog.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/corray333/backend-labs/meals/internal/dal/interfaces/imealrepo"
	"github.com/corray333/backend-labs/meals/internal/service/models/meal"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed meals.yaml
var defaultCatalog []byte

type catalogFile struct {
	Meals []struct {
		Name  string `yaml:"name"`
		Price string `yaml:"price"`
	} `yaml:"meals"`
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() ([]meal.Meal, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog decodes a YAML catalog. Names must be unique and prices non-negative.
func ParseCatalog(data []byte) ([]meal.Meal, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Meals))
	meals := make([]meal.Meal, 0, len(file.Meals))
	for i, m := range file.Meals {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			return nil, fmt.Errorf("meal %d: name is required", i)
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("meal %d: duplicate name %q", i, name)
		}
		seen[name] = struct{}{}

		price, err := decimal.NewFromString(m.Price)
		if err != nil {
			return nil, fmt.Errorf("meal %q: invalid price %q: %w", name, m.Price, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("meal %q: price must not be negative", name)
		}

		meals = append(meals, meal.Meal{
			ID:    uuid.New(),
			Name:  name,
			Price: price,
		})
	}

	return meals, nil
}

// Apply upserts meals by name. Existing meals keep their id and get the new price.
func Apply(ctx context.Context, repo imealrepo.IMealRepository, meals []meal.Meal) ([]meal.Meal, error) {
	stored, err := repo.Upsert(ctx, meals)
	if err != nil {
		return nil, fmt.Errorf("failed to seed meals: %w", err)
	}

	slog.InfoContext(ctx, "Meal catalog seeded", "count", len(stored))

	return stored, nil
}
