package order

import (
	"storefront/domain/shared"

	"github.com/shopspring/decimal"
)

type CreatedEvent struct {
	shared.BaseEvent
}

func NewCreatedEvent(orderID int64) *CreatedEvent {
	return &CreatedEvent{BaseEvent: shared.NewBaseEvent("order.created", orderID)}
}

type CompletedEvent struct {
	shared.BaseEvent
	total decimal.Decimal
}

func NewCompletedEvent(orderID int64, total decimal.Decimal) *CompletedEvent {
	return &CompletedEvent{BaseEvent: shared.NewBaseEvent("order.completed", orderID), total: total}
}

func (e *CompletedEvent) Total() decimal.Decimal { return e.total }

type CancelledEvent struct {
	shared.BaseEvent
}

func NewCancelledEvent(orderID int64) *CancelledEvent {
	return &CancelledEvent{BaseEvent: shared.NewBaseEvent("order.cancelled", orderID)}
}
