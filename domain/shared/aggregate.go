package shared

import (
	"context"
	"errors"
)

// AggregateRoot is the entry point of a consistency boundary; every change goes through it.
// Its ID is a positive integer; 0 means not yet persisted.
// It guards its own invariants and records domain events.
type AggregateRoot interface {
	// ID returns the aggregate identity
	ID() int64

	// PullEvents returns and clears the recorded events.
	// The unit of work pulls them after a successful commit.
	PullEvents() []DomainEvent
}

// IsAggregateRoot is a compile-time marker:
// var _ = IsAggregateRoot(&Category{})
func IsAggregateRoot(agg AggregateRoot) AggregateRoot {
	return agg
}

// ValidIdentity reports whether id is an assigned identity.
func ValidIdentity(id int64) bool {
	return id > 0
}

// EnsureNameAvailable fails with ErrDuplicateName when findByName returns an
// aggregate other than selfID. Names are unique per aggregate kind.
func EnsureNameAvailable[T AggregateRoot](ctx context.Context, entity, name string, selfID int64, findByName func(context.Context, string) (T, error)) error {
	owner, err := findByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if owner.ID() == selfID {
		return nil
	}
	return NewDuplicateNameError(entity, name, owner.ID())
}
