package category

import "storefront/domain/shared"

type CreatedEvent struct {
	shared.BaseEvent
	name string
}

func NewCreatedEvent(categoryID int64, name string) *CreatedEvent {
	return &CreatedEvent{BaseEvent: shared.NewBaseEvent("category.created", categoryID), name: name}
}

func (e *CreatedEvent) Name() string { return e.name }

type RetiredEvent struct {
	shared.BaseEvent
}

func NewRetiredEvent(categoryID int64) *RetiredEvent {
	return &RetiredEvent{BaseEvent: shared.NewBaseEvent("category.retired", categoryID)}
}
