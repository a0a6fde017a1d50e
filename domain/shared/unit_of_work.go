package shared

import "context"

// CollectionTx is an open transaction on one collection.
// It accepts no writes after Commit or Rollback.
type CollectionTx interface {
	Collection() string
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Transactional is a resource that can join a multi-collection transaction, usually a repository.
type Transactional interface {
	Collection() string
	BeginTx(ctx context.Context) (CollectionTx, error)
}

// UnitOfWork owns the transaction boundary and collects aggregate events.
// With no participants fn runs directly and each write is atomic per document.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error, participants ...Transactional) error
	RegisterNew(aggregate AggregateRoot)
	RegisterDirty(aggregate AggregateRoot)
}

// UnitOfWorkFactory creates one unit of work per business operation.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}
