package shared

import (
	"fmt"
	"sync"
	"time"
)

type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	GetAggregateID() int64
}
type DomainEventPublisher interface {
	Publish(event DomainEvent) error
	Subscribe(eventName string, handler EventHandler) error
	Unsubscribe(eventName string, handler EventHandler) error
}
type EventHandler interface {
	Handle(event DomainEvent) error
	Name() string
}
type EventPublishResult struct {
	EventName   string    `json:"event_name"`
	AggregateID int64     `json:"aggregate_id"`
	Success     bool      `json:"success"`
	Message     string    `json:"message,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// BaseEvent carries the fields every event shares. Aggregates embed it.
type BaseEvent struct {
	name        string
	aggregateID int64
	occurredOn  time.Time
}

func NewBaseEvent(name string, aggregateID int64) BaseEvent {
	return BaseEvent{name: name, aggregateID: aggregateID, occurredOn: time.Now()}
}

func (e BaseEvent) EventName() string     { return e.name }
func (e BaseEvent) OccurredOn() time.Time { return e.occurredOn }
func (e BaseEvent) GetAggregateID() int64 { return e.aggregateID }

func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}

	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}

	if !ValidIdentity(event.GetAggregateID()) {
		return fmt.Errorf("aggregate ID must be positive")
	}

	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}

	return nil
}

// AllEvents subscribes a handler to every event name.
const AllEvents = "*"

type EventBus struct {
	handlers  map[string][]EventHandler
	mu        sync.RWMutex
	history   []EventPublishResult
	muHistory sync.Mutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]EventHandler),
		history:  make([]EventPublishResult, 0),
	}
}
func (bus *EventBus) Publish(event DomainEvent) error {
	if err := ValidateEvent(event); err != nil {
		return err
	}

	bus.mu.RLock()
	handlers := append([]EventHandler{}, bus.handlers[event.EventName()]...)
	handlers = append(handlers, bus.handlers[AllEvents]...)
	bus.mu.RUnlock()

	result := EventPublishResult{
		EventName:   event.EventName(),
		AggregateID: event.GetAggregateID(),
		Success:     true,
		PublishedAt: time.Now(),
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler.Handle(event); err != nil {
			errs = append(errs, fmt.Errorf("handler %s: %w", handler.Name(), err))
		}
	}
	if len(handlers) == 0 {
		result.Message = "no handlers registered for this event"
	}
	if len(errs) > 0 {
		result.Success = false
		result.Message = fmt.Sprintf("%d handlers failed", len(errs))
	}

	bus.record(result)

	if len(errs) > 0 {
		return fmt.Errorf("event %s: %d handlers failed: %v", event.EventName(), len(errs), errs)
	}
	return nil
}

func (bus *EventBus) record(result EventPublishResult) {
	bus.muHistory.Lock()
	defer bus.muHistory.Unlock()
	bus.history = append(bus.history, result)
	if len(bus.history) > 1000 {
		bus.history = bus.history[len(bus.history)-1000:]
	}
}

func (bus *EventBus) Subscribe(eventName string, handler EventHandler) error {
	if eventName == "" {
		return fmt.Errorf("event name cannot be empty")
	}

	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	for _, h := range bus.handlers[eventName] {
		if h.Name() == handler.Name() {
			return fmt.Errorf("handler %s already subscribed to %s", handler.Name(), eventName)
		}
	}

	bus.handlers[eventName] = append(bus.handlers[eventName], handler)
	return nil
}
func (bus *EventBus) Unsubscribe(eventName string, handler EventHandler) error {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	handlers, exists := bus.handlers[eventName]
	if !exists {
		return nil
	}

	for i, h := range handlers {
		if h.Name() == handler.Name() {
			bus.handlers[eventName] = append(handlers[:i], handlers[i+1:]...)
			return nil
		}
	}

	return nil
}
func (bus *EventBus) GetPublishHistory() []EventPublishResult {
	bus.muHistory.Lock()
	defer bus.muHistory.Unlock()

	history := make([]EventPublishResult, len(bus.history))
	copy(history, bus.history)
	return history
}

type FuncHandler struct {
	name string
	fn   func(DomainEvent) error
}

func NewFuncHandler(name string, fn func(DomainEvent) error) *FuncHandler {
	if name == "" {
		name = fmt.Sprintf("func-handler-%d", time.Now().UnixNano())
	}
	return &FuncHandler{
		name: name,
		fn:   fn,
	}
}
func (h *FuncHandler) Handle(event DomainEvent) error {
	return h.fn(event)
}
func (h *FuncHandler) Name() string {
	return h.name
}

var _ DomainEventPublisher = (*EventBus)(nil)
