package memory

import (
	"context"

	"storefront/domain/payment"
	"storefront/domain/shared"
)

// PaymentRepository In-memory implementation of payment repository (append-only)
type PaymentRepository struct {
	*Store[payment.ReconstructionDTO]
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{Store: NewStore[payment.ReconstructionDTO]("payments")}
}

func (r *PaymentRepository) NextIdentity(ctx context.Context) (int64, error) {
	return r.NextID(), nil
}

func (r *PaymentRepository) Insert(ctx context.Context, p *payment.Payment) error {
	return r.Store.Insert(ctx, p.ID(), p.Snapshot())
}

func (r *PaymentRepository) FindByID(ctx context.Context, id int64) (*payment.Payment, error) {
	dto, ok := r.Get(ctx, id)
	if !ok {
		return nil, shared.NewNotFoundError(payment.EntityName, id)
	}
	return payment.RebuildFromDTO(dto), nil
}

func (r *PaymentRepository) FindByOrderID(ctx context.Context, orderID int64) ([]*payment.Payment, error) {
	return rebuildPayments(r.Filter(ctx, func(dto payment.ReconstructionDTO) bool {
		return dto.OrderID == orderID
	})), nil
}

func (r *PaymentRepository) FindAll(ctx context.Context) ([]*payment.Payment, error) {
	return rebuildPayments(r.All(ctx)), nil
}

func (r *PaymentRepository) Count(ctx context.Context) (int64, error) {
	return r.Store.Count(ctx), nil
}

func rebuildPayments(docs []payment.ReconstructionDTO) []*payment.Payment {
	out := make([]*payment.Payment, len(docs))
	for i, dto := range docs {
		out[i] = payment.RebuildFromDTO(dto)
	}
	return out
}

var _ payment.Repository = (*PaymentRepository)(nil)
