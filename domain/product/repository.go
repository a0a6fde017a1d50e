package product

import (
	"context"

	"storefront/domain/shared"
)

// Repository Product repository interface
type Repository interface {
	shared.Transactional

	NextIdentity(ctx context.Context) (int64, error)
	Save(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id int64) (*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)

	// FindByIDs skips ids that do not exist
	FindByIDs(ctx context.Context, ids []int64) ([]*Product, error)

	FindByCategoryID(ctx context.Context, categoryID int64) ([]*Product, error)
	FindByTagID(ctx context.Context, tagID int64) ([]*Product, error)
	FindBySpecification(ctx context.Context, spec shared.Specification[*Product]) ([]*Product, error)
	Count(ctx context.Context) (int64, error)
}
