/*
Package order Application Layer - Order business process orchestration

Responsibilities of Application Layer:
1. Receive external requests (usually from Controller)
2. Load the products referenced by line items and snapshot them
3. Call aggregate root methods to execute business operations
4. Use UoW to manage the write and collect events
5. Return results to caller

Payment settlement lives in the payment application service because it
writes the order and the payment in one transaction.
*/
package order

import (
	"context"
	"errors"

	"storefront/domain/order"
	"storefront/domain/product"
	"storefront/domain/shared"
)

// ApplicationService Order application service - coordinates order-related business processes
type ApplicationService struct {
	orderRepo   order.Repository
	productRepo product.Repository
	uowFactory  shared.UnitOfWorkFactory
}

// NewApplicationService Create order application service
func NewApplicationService(
	orderRepo order.Repository,
	productRepo product.Repository,
	uowFactory shared.UnitOfWorkFactory,
) *ApplicationService {
	return &ApplicationService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		uowFactory:  uowFactory,
	}
}

// CreateOrder Create order
// Uses UoW to manage the write and collect events from aggregate
func (s *ApplicationService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	var o *order.Order

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		id, err := s.orderRepo.NextIdentity(ctx)
		if err != nil {
			return err
		}
		o, err = order.NewOrder(id)
		if err != nil {
			return err
		}

		for _, item := range req.LineItems {
			if err := s.addLineItem(ctx, o, item); err != nil {
				return err
			}
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterNew(o)
		return nil
	})
	if err != nil {
		return nil, shared.WrapOp("create order", err)
	}

	return toOrderResponse(o), nil
}

// GetOrder returns nil when the order does not exist
func (s *ApplicationService) GetOrder(ctx context.Context, orderID int64) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.WrapOp("get order", err)
	}
	return toOrderResponse(o), nil
}

// GetAllOrders lists the orders matching q
func (s *ApplicationService) GetAllOrders(ctx context.Context, q OrderQuery) ([]*OrderResponse, error) {
	spec, err := q.specification()
	if err != nil {
		return nil, err
	}

	var orders []*order.Order
	if spec != nil {
		orders, err = s.orderRepo.FindBySpecification(ctx, spec)
	} else {
		orders, err = s.orderRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, shared.WrapOp("get orders", err)
	}
	return toOrderResponses(orders), nil
}

// specification is nil when q filters nothing
func (q OrderQuery) specification() (shared.Specification[*order.Order], error) {
	var spec shared.Specification[*order.Order]
	if q.Status != "" {
		spec = order.NewByStatusSpecification(order.Status(q.Status))
	}
	if q.CreatedFrom.IsZero() && q.CreatedTo.IsZero() {
		return spec, nil
	}
	if !q.CreatedFrom.IsZero() && !q.CreatedTo.IsZero() && q.CreatedTo.Before(q.CreatedFrom) {
		return nil, shared.NewValidationError(order.EntityName, "created_to", "must not be before created_from")
	}
	byDate := order.NewByDateRangeSpecification(q.CreatedFrom, q.CreatedTo)
	if spec == nil {
		return byDate, nil
	}
	return shared.And(spec, byDate), nil
}

// UpdateOrder Add and remove line items on a CREATED order
func (s *ApplicationService) UpdateOrder(ctx context.Context, orderID int64, req UpdateOrderRequest) (*OrderResponse, error) {
	var o *order.Order

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		for _, item := range req.Add {
			if err := s.addLineItem(ctx, o, item); err != nil {
				return err
			}
		}
		for _, item := range req.Remove {
			if err := o.RemoveLineItem(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, shared.WrapOp("update order", err)
	}

	return toOrderResponse(o), nil
}

// CompleteOrder CREATED -> COMPLETE without a payment record
func (s *ApplicationService) CompleteOrder(ctx context.Context, orderID int64) (*OrderResponse, error) {
	return s.transition(ctx, "complete order", orderID, (*order.Order).Complete)
}

// CancelOrder CREATED -> CANCELLED
func (s *ApplicationService) CancelOrder(ctx context.Context, orderID int64) (*OrderResponse, error) {
	return s.transition(ctx, "cancel order", orderID, (*order.Order).Cancel)
}

func (s *ApplicationService) transition(ctx context.Context, op string, orderID int64, apply func(*order.Order) error) (*OrderResponse, error) {
	var o *order.Order

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := apply(o); err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, shared.WrapOp(op, err)
	}

	return toOrderResponse(o), nil
}

// addLineItem snapshots the product as it is now.
// Retired products cannot be ordered.
func (s *ApplicationService) addLineItem(ctx context.Context, o *order.Order, item LineItemRequest) error {
	p, err := s.productRepo.FindByID(ctx, item.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewInvalidReferenceError(product.EntityName, item.ProductID)
		}
		return err
	}
	if p.Retired() {
		return shared.NewRetiredEntityError(product.EntityName, p.ID())
	}

	snapshot := order.ProductSnapshot{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
	}
	return o.AddLineItem(snapshot, item.Quantity)
}
