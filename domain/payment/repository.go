package payment

import (
	"context"

	"storefront/domain/shared"
)

// Repository Payment repository interface. There is no Save: payments are insert-only.
type Repository interface {
	shared.Transactional

	NextIdentity(ctx context.Context) (int64, error)
	Insert(ctx context.Context, p *Payment) error
	FindByID(ctx context.Context, id int64) (*Payment, error)
	FindByOrderID(ctx context.Context, orderID int64) ([]*Payment, error)
	FindAll(ctx context.Context) ([]*Payment, error)
	Count(ctx context.Context) (int64, error)
}
