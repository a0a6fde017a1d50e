package product

import (
	"context"

	"storefront/domain/shared"

	"github.com/shopspring/decimal"
)

// ByCategorySpecification matches products whose snapshot points at CategoryID
type ByCategorySpecification struct {
	CategoryID int64
}

func (spec ByCategorySpecification) IsSatisfiedBy(ctx context.Context, p *Product) bool {
	return p.Category().ID == spec.CategoryID
}

// HasTagSpecification matches products carrying TagID
type HasTagSpecification struct {
	TagID int64
}

func (spec HasTagSpecification) IsSatisfiedBy(ctx context.Context, p *Product) bool {
	return p.HasTag(spec.TagID)
}

// ByPriceRangeSpecification Both bounds are optional; a zero bound is ignored
type ByPriceRangeSpecification struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

func (spec ByPriceRangeSpecification) IsSatisfiedBy(ctx context.Context, p *Product) bool {
	if !spec.Min.IsZero() && p.Price().LessThan(spec.Min) {
		return false
	}
	if !spec.Max.IsZero() && p.Price().GreaterThan(spec.Max) {
		return false
	}
	return true
}

type ByNameSpecification struct {
	Name string
}

func (spec ByNameSpecification) IsSatisfiedBy(ctx context.Context, p *Product) bool {
	return p.Name() == spec.Name
}

func NewByCategorySpecification(categoryID int64) shared.Specification[*Product] {
	return ByCategorySpecification{CategoryID: categoryID}
}

func NewHasTagSpecification(tagID int64) shared.Specification[*Product] {
	return HasTagSpecification{TagID: tagID}
}

func NewByPriceRangeSpecification(min, max decimal.Decimal) shared.Specification[*Product] {
	return ByPriceRangeSpecification{Min: min, Max: max}
}

func NewByNameSpecification(name string) shared.Specification[*Product] {
	return ByNameSpecification{Name: name}
}

// NewActiveSpecification matches products that are not retired
func NewActiveSpecification() shared.Specification[*Product] {
	return shared.RetiredSpecification[*Product]{Retired: false}
}
