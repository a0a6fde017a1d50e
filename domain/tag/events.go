package tag

import "storefront/domain/shared"

type CreatedEvent struct {
	shared.BaseEvent
	name string
}

func NewCreatedEvent(tagID int64, name string) *CreatedEvent {
	return &CreatedEvent{BaseEvent: shared.NewBaseEvent("tag.created", tagID), name: name}
}

func (e *CreatedEvent) Name() string { return e.name }

type RetiredEvent struct {
	shared.BaseEvent
}

func NewRetiredEvent(tagID int64) *RetiredEvent {
	return &RetiredEvent{BaseEvent: shared.NewBaseEvent("tag.retired", tagID)}
}

type UnretiredEvent struct {
	shared.BaseEvent
}

func NewUnretiredEvent(tagID int64) *UnretiredEvent {
	return &UnretiredEvent{BaseEvent: shared.NewBaseEvent("tag.unretired", tagID)}
}
