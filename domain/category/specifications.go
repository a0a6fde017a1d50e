package category

import (
	"context"

	"storefront/domain/shared"
)

// ContainsProductSpecification matches categories associated with ProductID
type ContainsProductSpecification struct {
	ProductID int64
}

func (spec ContainsProductSpecification) IsSatisfiedBy(ctx context.Context, c *Category) bool {
	return c.HasProduct(spec.ProductID)
}

// ByNameSpecification matches on exact name
type ByNameSpecification struct {
	Name string
}

func (spec ByNameSpecification) IsSatisfiedBy(ctx context.Context, c *Category) bool {
	return c.Name() == spec.Name
}

func NewContainsProductSpecification(productID int64) shared.Specification[*Category] {
	return ContainsProductSpecification{ProductID: productID}
}

func NewByNameSpecification(name string) shared.Specification[*Category] {
	return ByNameSpecification{Name: name}
}

// NewActiveSpecification matches categories that are not retired
func NewActiveSpecification() shared.Specification[*Category] {
	return shared.RetiredSpecification[*Category]{Retired: false}
}
