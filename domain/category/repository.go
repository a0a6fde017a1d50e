package category

import (
	"context"

	"storefront/domain/shared"
)

// Repository Category repository interface
// Save is an upsert of the whole document (last write wins).
type Repository interface {
	shared.Transactional

	// NextIdentity allocates a new positive id
	NextIdentity(ctx context.Context) (int64, error)

	Save(ctx context.Context, c *Category) error

	// FindByID returns a NotFound domain error when absent
	FindByID(ctx context.Context, id int64) (*Category, error)

	// FindByName returns a NotFound domain error when absent
	FindByName(ctx context.Context, name string) (*Category, error)

	FindAll(ctx context.Context) ([]*Category, error)

	// FindByIDs skips ids that do not exist
	FindByIDs(ctx context.Context, ids []int64) ([]*Category, error)

	// FindByProductID reverse lookup: categories whose product set contains productID
	FindByProductID(ctx context.Context, productID int64) ([]*Category, error)

	FindBySpecification(ctx context.Context, spec shared.Specification[*Category]) ([]*Category, error)

	Count(ctx context.Context) (int64, error)
}
