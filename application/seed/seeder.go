/*
Package seed Demo catalog data

Seed runs through the application services, so seeded data obeys the same
association rules as anything created through the API. Whether to seed is
decided from the store on every call: a non-empty categories collection means
the catalog already exists.
*/
package seed

import (
	"context"
	"fmt"

	categoryApp "storefront/application/category"
	productApp "storefront/application/product"
	tagApp "storefront/application/tag"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type categorySeed struct {
	name, description string
}

type tagSeed struct {
	name, description string
}

type productSeed struct {
	name, description string
	price             string
	category          string
	tags              []string
}

var (
	categories = []categorySeed{
		{"Seafood", "Fresh fish and shellfish"},
		{"Dairy", "Milk, cheese and eggs"},
		{"Bakery", "Bread and pastries"},
	}
	tags = []tagSeed{
		{"Fresh", "Delivered daily"},
		{"Local", "Sourced within 100km"},
		{"Organic", "Certified organic"},
	}
	products = []productSeed{
		{"Fish", "Atlantic cod fillet", "5.99", "Seafood", []string{"Fresh"}},
		{"Crab", "Whole brown crab", "12.50", "Seafood", []string{"Fresh", "Local"}},
		{"Milk", "Whole milk, 1l", "1.20", "Dairy", []string{"Local", "Organic"}},
		{"Cheddar", "Mature cheddar, 400g", "4.75", "Dairy", nil},
		{"Sourdough", "Sourdough loaf", "3.40", "Bakery", []string{"Fresh", "Local"}},
	}
)

// Seeder Idempotent demo data seeder
type Seeder struct {
	categories *categoryApp.ApplicationService
	tags       *tagApp.ApplicationService
	products   *productApp.ApplicationService
	logger     *zap.Logger
}

func NewSeeder(
	categories *categoryApp.ApplicationService,
	tags *tagApp.ApplicationService,
	products *productApp.ApplicationService,
	logger *zap.Logger,
) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{categories: categories, tags: tags, products: products, logger: logger}
}

// Seed creates the demo catalog unless categories already exist.
// It reports whether anything was written.
func (s *Seeder) Seed(ctx context.Context) (bool, error) {
	n, err := s.categories.CountCategories(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		s.logger.Debug("catalog already populated, skipping seed", zap.Int64("categories", n))
		return false, nil
	}

	categoryIDs := make(map[string]int64, len(categories))
	for _, c := range categories {
		resp, err := s.categories.CreateCategory(ctx, categoryApp.CreateCategoryRequest{
			Name:        c.name,
			Description: c.description,
		})
		if err != nil {
			return false, err
		}
		categoryIDs[c.name] = resp.ID
	}

	tagIDs := make(map[string]int64, len(tags))
	for _, t := range tags {
		resp, err := s.tags.CreateTag(ctx, tagApp.CreateTagRequest{
			Name:        t.name,
			Description: t.description,
		})
		if err != nil {
			return false, err
		}
		tagIDs[t.name] = resp.ID
	}

	for _, p := range products {
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			return false, fmt.Errorf("seed product %s: %w", p.name, err)
		}
		ids := make([]int64, len(p.tags))
		for i, name := range p.tags {
			ids[i] = tagIDs[name]
		}
		if _, err := s.products.CreateProduct(ctx, productApp.CreateProductRequest{
			Name:        p.name,
			Description: p.description,
			Price:       price,
			CategoryID:  categoryIDs[p.category],
			TagIDs:      ids,
		}); err != nil {
			return false, err
		}
	}

	s.logger.Info("catalog seeded",
		zap.Int("categories", len(categories)),
		zap.Int("tags", len(tags)),
		zap.Int("products", len(products)),
	)
	return true, nil
}
