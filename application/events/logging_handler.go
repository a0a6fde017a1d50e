package events

import (
	"storefront/domain/shared"

	"go.uber.org/zap"
)

// LoggingHandler writes every published domain event to the log
type LoggingHandler struct {
	logger *zap.Logger
}

func NewLoggingHandler(logger *zap.Logger) *LoggingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingHandler{logger: logger}
}

func (h *LoggingHandler) Name() string { return "event-logger" }

func (h *LoggingHandler) Handle(event shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event", event.EventName()),
		zap.Int64("aggregate_id", event.GetAggregateID()),
		zap.Time("occurred_on", event.OccurredOn()),
	)
	return nil
}

// Register subscribes the logging handler to all events on publisher
func Register(publisher shared.DomainEventPublisher, logger *zap.Logger) error {
	return publisher.Subscribe(shared.AllEvents, NewLoggingHandler(logger))
}
