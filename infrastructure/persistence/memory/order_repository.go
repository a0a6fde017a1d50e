package memory

import (
	"context"

	"storefront/domain/order"
	"storefront/domain/shared"
)

// OrderRepository In-memory implementation of order repository
// Line items are stored inside the order document.
type OrderRepository struct {
	*Store[order.ReconstructionDTO]
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{Store: NewStore[order.ReconstructionDTO]("orders")}
}

func (r *OrderRepository) NextIdentity(ctx context.Context) (int64, error) {
	return r.NextID(), nil
}

func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.Put(ctx, o.ID(), o.Snapshot())
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	dto, ok := r.Get(ctx, id)
	if !ok {
		return nil, order.NewOrderNotFoundError(id)
	}
	return order.RebuildFromDTO(dto), nil
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	docs := r.All(ctx)
	out := make([]*order.Order, len(docs))
	for i, dto := range docs {
		out[i] = order.RebuildFromDTO(dto)
	}
	return out, nil
}

func (r *OrderRepository) FindBySpecification(ctx context.Context, spec shared.Specification[*order.Order]) ([]*order.Order, error) {
	all, _ := r.FindAll(ctx)
	return filterBySpec(ctx, all, spec), nil
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	return r.Store.Count(ctx), nil
}

var _ order.Repository = (*OrderRepository)(nil)
