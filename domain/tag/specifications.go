package tag

import (
	"context"

	"storefront/domain/shared"
)

type ContainsProductSpecification struct {
	ProductID int64
}

func (spec ContainsProductSpecification) IsSatisfiedBy(ctx context.Context, t *Tag) bool {
	return t.HasProduct(spec.ProductID)
}

type ByNameSpecification struct {
	Name string
}

func (spec ByNameSpecification) IsSatisfiedBy(ctx context.Context, t *Tag) bool {
	return t.Name() == spec.Name
}

func NewContainsProductSpecification(productID int64) shared.Specification[*Tag] {
	return ContainsProductSpecification{ProductID: productID}
}

func NewByNameSpecification(name string) shared.Specification[*Tag] {
	return ByNameSpecification{Name: name}
}

func NewActiveSpecification() shared.Specification[*Tag] {
	return shared.RetiredSpecification[*Tag]{Retired: false}
}
