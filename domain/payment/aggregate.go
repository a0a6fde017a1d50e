/*
Package payment Payment aggregate

A payment settles exactly one order. Payments are append-only: they are
inserted once and never updated.
*/
package payment

import (
	"time"

	"storefront/domain/shared"

	"github.com/shopspring/decimal"
)

const EntityName = "payment"

// Payment aggregate root
type Payment struct {
	id         int64
	orderID    int64
	amount     decimal.Decimal
	orderTotal decimal.Decimal
	change     decimal.Decimal
	date       time.Time

	events []shared.DomainEvent
}

// NewPayment Business rule: amount must cover the order total; the rest is change.
func NewPayment(id, orderID int64, amount, orderTotal decimal.Decimal) (*Payment, error) {
	if !shared.ValidIdentity(id) {
		return nil, shared.NewInvalidIdentityError(EntityName, id)
	}
	if !shared.ValidIdentity(orderID) {
		return nil, shared.NewInvalidIdentityError("order", orderID)
	}
	if amount.LessThan(orderTotal) {
		return nil, shared.NewInsufficientAmountError(EntityName, amount.StringFixed(2), orderTotal.StringFixed(2))
	}

	p := &Payment{
		id:         id,
		orderID:    orderID,
		amount:     amount,
		orderTotal: orderTotal,
		change:     amount.Sub(orderTotal),
		date:       time.Now(),
	}
	p.events = append(p.events, NewMadeEvent(id, orderID, amount))
	return p, nil
}

// ReconstructionDTO is for repository implementations only.
type ReconstructionDTO struct {
	ID         int64
	OrderID    int64
	Amount     decimal.Decimal
	OrderTotal decimal.Decimal
	Change     decimal.Decimal
	Date       time.Time
}

func RebuildFromDTO(dto ReconstructionDTO) *Payment {
	return &Payment{
		id:         dto.ID,
		orderID:    dto.OrderID,
		amount:     dto.Amount,
		orderTotal: dto.OrderTotal,
		change:     dto.Change,
		date:       dto.Date,
	}
}

func (p *Payment) Snapshot() ReconstructionDTO {
	return ReconstructionDTO{
		ID:         p.id,
		OrderID:    p.orderID,
		Amount:     p.amount,
		OrderTotal: p.orderTotal,
		Change:     p.change,
		Date:       p.date,
	}
}

func (p *Payment) ID() int64                   { return p.id }
func (p *Payment) OrderID() int64              { return p.orderID }
func (p *Payment) Amount() decimal.Decimal     { return p.amount }
func (p *Payment) OrderTotal() decimal.Decimal { return p.orderTotal }
func (p *Payment) Change() decimal.Decimal     { return p.change }
func (p *Payment) Date() time.Time             { return p.date }

func (p *Payment) PullEvents() []shared.DomainEvent {
	events := p.events
	p.events = nil
	return events
}

var _ shared.AggregateRoot = (*Payment)(nil)
