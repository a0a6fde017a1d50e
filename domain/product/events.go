package product

import "storefront/domain/shared"

type CreatedEvent struct {
	shared.BaseEvent
	name string
}

func NewCreatedEvent(productID int64, name string) *CreatedEvent {
	return &CreatedEvent{BaseEvent: shared.NewBaseEvent("product.created", productID), name: name}
}

func (e *CreatedEvent) Name() string { return e.name }

type RetiredEvent struct {
	shared.BaseEvent
}

func NewRetiredEvent(productID int64) *RetiredEvent {
	return &RetiredEvent{BaseEvent: shared.NewBaseEvent("product.retired", productID)}
}

type UnretiredEvent struct {
	shared.BaseEvent
}

func NewUnretiredEvent(productID int64) *UnretiredEvent {
	return &UnretiredEvent{BaseEvent: shared.NewBaseEvent("product.unretired", productID)}
}
