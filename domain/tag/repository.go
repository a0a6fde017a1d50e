package tag

import (
	"context"

	"storefront/domain/shared"
)

// Repository Tag repository interface
type Repository interface {
	shared.Transactional

	NextIdentity(ctx context.Context) (int64, error)
	Save(ctx context.Context, t *Tag) error
	FindByID(ctx context.Context, id int64) (*Tag, error)
	FindByName(ctx context.Context, name string) (*Tag, error)
	FindAll(ctx context.Context) ([]*Tag, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*Tag, error)
	FindByProductID(ctx context.Context, productID int64) ([]*Tag, error)
	FindBySpecification(ctx context.Context, spec shared.Specification[*Tag]) ([]*Tag, error)
	Count(ctx context.Context) (int64, error)
}
