package order

import (
	"context"

	"storefront/domain/shared"
)

// Repository Order repository interface
type Repository interface {
	shared.Transactional

	NextIdentity(ctx context.Context) (int64, error)

	// Save upserts the order document including its line items
	Save(ctx context.Context, o *Order) error

	// FindByID returns an ErrOrderNotFound error when absent
	FindByID(ctx context.Context, id int64) (*Order, error)

	FindAll(ctx context.Context) ([]*Order, error)

	// FindBySpecification Allows flexible query composition without repository method explosion
	FindBySpecification(ctx context.Context, spec shared.Specification[*Order]) ([]*Order, error)

	Count(ctx context.Context) (int64, error)
}
