/*
Package payment Application Layer - Payment settlement

MakePayment checks, in order: the order exists, the amount covers the total,
and the order can still be completed. The completed order and the new
payment are then written in one orders+payments transaction.
*/
package payment

import (
	"context"
	"errors"

	"storefront/domain/order"
	"storefront/domain/payment"
	"storefront/domain/shared"
)

// ApplicationService Payment application service
type ApplicationService struct {
	paymentRepo payment.Repository
	orderRepo   order.Repository
	uowFactory  shared.UnitOfWorkFactory
}

// NewApplicationService Create payment application service
func NewApplicationService(
	paymentRepo payment.Repository,
	orderRepo order.Repository,
	uowFactory shared.UnitOfWorkFactory,
) *ApplicationService {
	return &ApplicationService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		uowFactory:  uowFactory,
	}
}

// MakePayment Settle an order
func (s *ApplicationService) MakePayment(ctx context.Context, req MakePaymentRequest) (*PaymentResponse, error) {
	var p *payment.Payment

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orderRepo.FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}

		total := o.Total()
		if req.Amount.LessThan(total) {
			return shared.NewInsufficientAmountError(payment.EntityName, req.Amount.StringFixed(2), total.StringFixed(2))
		}

		status := o.Status()
		if err := o.Complete(); err != nil {
			switch status {
			case order.StatusComplete:
				return payment.NewOrderAlreadyPaidError(o.ID(), err)
			case order.StatusCancelled:
				return payment.NewOrderAlreadyCancelledError(o.ID(), err)
			}
			return err
		}

		id, err := s.paymentRepo.NextIdentity(ctx)
		if err != nil {
			return err
		}
		p, err = payment.NewPayment(id, o.ID(), req.Amount, total)
		if err != nil {
			return err
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		if err := s.paymentRepo.Insert(ctx, p); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		uow.RegisterNew(p)
		return nil
	}, s.orderRepo, s.paymentRepo)
	if err != nil {
		return nil, shared.WrapOp("make payment", err)
	}

	return toPaymentResponse(p), nil
}

// GetPayment returns nil when the payment does not exist
func (s *ApplicationService) GetPayment(ctx context.Context, id int64) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.WrapOp("get payment", err)
	}
	return toPaymentResponse(p), nil
}

func (s *ApplicationService) GetPaymentsByOrder(ctx context.Context, orderID int64) ([]*PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, shared.WrapOp("get payments", err)
	}
	return toPaymentResponses(payments), nil
}

func (s *ApplicationService) GetAllPayments(ctx context.Context) ([]*PaymentResponse, error) {
	payments, err := s.paymentRepo.FindAll(ctx)
	if err != nil {
		return nil, shared.WrapOp("get payments", err)
	}
	return toPaymentResponses(payments), nil
}
