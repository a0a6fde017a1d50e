package persistence

import (
	"context"
	"errors"

	"storefront/domain/shared"
	"storefront/infrastructure/persistence/retry"

	"go.uber.org/zap"
)

// UnitOfWork is the transaction coordinator used by application services.
// It runs one business operation, brackets it in a MultiCollectionTransaction
// when participants are given, and publishes the events of registered
// aggregates once the writes are committed.
type UnitOfWork struct {
	aggregates  []shared.AggregateRoot
	publisher   shared.DomainEventPublisher
	retryConfig retry.Config
	logger      *zap.Logger
}

// NewUnitOfWork creates a new UnitOfWork instance. publisher may be nil.
func NewUnitOfWork(publisher shared.DomainEventPublisher, logger *zap.Logger) *UnitOfWork {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnitOfWork{
		publisher:   publisher,
		retryConfig: retry.DefaultConfig,
		logger:      logger,
	}
}

// SetRetryConfig updates the retry configuration for this UnitOfWork
func (u *UnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

// Execute runs fn. With participants it:
// 1. Begins a transaction on each participating collection
// 2. Injects the transactions into context for repositories to use
// 3. Executes the business function
// 4. Commits on success, rolls back all participants on error
// 5. Retries the whole sequence on transient store failures
// 6. Publishes the events of registered aggregates after commit
//
// Without participants fn runs directly and every save is atomic on its own.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error, participants ...shared.Transactional) error {
	executeOnce := func(ctx context.Context) error {
		// Reset aggregates for this attempt
		u.aggregates = u.aggregates[:0]

		if len(participants) == 0 {
			return fn(ctx)
		}
		err := RunInTransaction(ctx, fn, participants...)
		var txErr *shared.TransactionError
		switch {
		case errors.As(err, &txErr):
			u.logger.Warn("transaction rolled back",
				zap.Strings("collections", txErr.Collections),
				zap.String("request_id", RequestIDFromContext(ctx)),
				zap.Error(txErr.Err),
			)
		case err == nil:
			u.logger.Debug("transaction committed",
				zap.Int("collections", len(participants)),
				zap.String("request_id", RequestIDFromContext(ctx)),
			)
		}
		return err
	}

	if err := retry.ExecuteWithRetry(ctx, u.retryConfig, executeOnce); err != nil {
		return err
	}
	u.publishEvents(ctx)
	return nil
}

func (u *UnitOfWork) publishEvents(ctx context.Context) {
	for _, agg := range u.aggregates {
		for _, event := range agg.PullEvents() {
			if u.publisher == nil {
				continue
			}
			// The writes are already committed; a failing handler is logged, not returned.
			if err := u.publisher.Publish(event); err != nil {
				u.logger.Warn("domain event handler failed",
					zap.String("event", event.EventName()),
					zap.Int64("aggregate_id", event.GetAggregateID()),
					zap.String("request_id", RequestIDFromContext(ctx)),
					zap.Error(err),
				)
			}
		}
	}
	u.aggregates = u.aggregates[:0]
}

// RegisterNew registers a newly created aggregate root for event collection
func (u *UnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// RegisterDirty registers a modified aggregate root for event collection
func (u *UnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// Compile-time check that UnitOfWork implements shared.UnitOfWork
var _ shared.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWorkFactory hands out one UnitOfWork per business operation.
type UnitOfWorkFactory struct {
	publisher   shared.DomainEventPublisher
	retryConfig retry.Config
	logger      *zap.Logger
}

func NewUnitOfWorkFactory(publisher shared.DomainEventPublisher, retryConfig retry.Config, logger *zap.Logger) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		publisher:   publisher,
		retryConfig: retryConfig,
		logger:      logger,
	}
}

func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	uow := NewUnitOfWork(f.publisher, f.logger)
	uow.SetRetryConfig(f.retryConfig)
	return uow
}

var _ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
