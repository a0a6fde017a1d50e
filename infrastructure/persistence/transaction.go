package persistence

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"storefront/domain/shared"
)

// TxState Per-collection transaction state
type TxState int

const (
	TxIdle TxState = iota
	TxBegan
	TxCommitted
	TxRolledBack
)

func (s TxState) String() string {
	switch s {
	case TxIdle:
		return "idle"
	case TxBegan:
		return "began"
	case TxCommitted:
		return "committed"
	case TxRolledBack:
		return "rolled back"
	default:
		return fmt.Sprintf("TxState(%d)", int(s))
	}
}

// ErrTxState is returned when Begin/Commit/Rollback is called from the wrong state.
var ErrTxState = errors.New("invalid transaction state")

// TxLifecycle tracks Idle -> Began -> Committed | RolledBack for one collection.
// Backends embed it in their CollectionTx implementation.
type TxLifecycle struct {
	mu         sync.Mutex
	collection string
	state      TxState
}

func NewTxLifecycle(collection string) *TxLifecycle {
	return &TxLifecycle{collection: collection}
}

func (l *TxLifecycle) Collection() string { return l.collection }

func (l *TxLifecycle) State() TxState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *TxLifecycle) Begin() error    { return l.move(TxIdle, TxBegan) }
func (l *TxLifecycle) Commit() error   { return l.move(TxBegan, TxCommitted) }
func (l *TxLifecycle) Rollback() error { return l.move(TxBegan, TxRolledBack) }

func (l *TxLifecycle) move(from, to TxState) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != from {
		return fmt.Errorf("%w: %s is %s, cannot move to %s", ErrTxState, l.collection, l.state, to)
	}
	l.state = to
	return nil
}

// MustBeWritable panics unless the transaction is in Began.
// A write through a finished transaction is a programming error.
func (l *TxLifecycle) MustBeWritable() {
	if s := l.State(); s != TxBegan {
		panic(fmt.Sprintf("write to %s through a transaction in state %s", l.collection, s))
	}
}

// ============================================================================
// MultiCollectionTransaction
// ============================================================================

// MultiCollectionTransaction brackets writes to several collections.
//
//	mt := NewMultiCollectionTransaction(tags, products)
//	ctx, err := mt.Begin(ctx)
//	if err != nil { return err }
//	defer mt.Close(ctx)
//	... writes using ctx ...
//	return mt.Commit(ctx)
//
// Close rolls back every participant that has not been committed, in reverse
// order of begin.
type MultiCollectionTransaction struct {
	participants []shared.Transactional
	begun        []shared.CollectionTx
	byName       map[string]shared.CollectionTx
	done         bool
}

// NewMultiCollectionTransaction keeps the first participant for each collection name.
func NewMultiCollectionTransaction(participants ...shared.Transactional) *MultiCollectionTransaction {
	seen := make(map[string]bool, len(participants))
	unique := make([]shared.Transactional, 0, len(participants))
	for _, p := range participants {
		if p == nil || seen[p.Collection()] {
			continue
		}
		seen[p.Collection()] = true
		unique = append(unique, p)
	}
	return &MultiCollectionTransaction{
		participants: unique,
		byName:       make(map[string]shared.CollectionTx, len(unique)),
	}
}

// Collections returns participant names in begin order.
func (t *MultiCollectionTransaction) Collections() []string {
	names := make([]string, len(t.participants))
	for i, p := range t.participants {
		names[i] = p.Collection()
	}
	return names
}

// Tx returns the transaction on collection, or nil when collection is not a
// participant. After Commit or Rollback the finished transaction is still
// returned so that a stray write through it fails loudly.
func (t *MultiCollectionTransaction) Tx(collection string) shared.CollectionTx {
	return t.byName[collection]
}

// Begin opens a transaction on each participant in order. If one fails the
// ones already begun are rolled back. The returned context carries t.
func (t *MultiCollectionTransaction) Begin(ctx context.Context) (context.Context, error) {
	if len(t.begun) > 0 || t.done {
		return ctx, fmt.Errorf("%w: transaction already started", ErrTxState)
	}
	for _, p := range t.participants {
		tx, err := p.BeginTx(ctx)
		if err != nil {
			rbErr := t.rollback(ctx)
			return ctx, t.fail(errors.Join(fmt.Errorf("begin %s: %w", p.Collection(), err), rbErr))
		}
		t.begun = append(t.begun, tx)
		t.byName[p.Collection()] = tx
	}
	return ContextWithTx(ctx, t), nil
}

// Commit commits participants in begin order. A commit failure rolls back the
// participants not yet committed; earlier commits cannot be undone.
func (t *MultiCollectionTransaction) Commit(ctx context.Context) error {
	if t.done {
		return fmt.Errorf("%w: transaction already finished", ErrTxState)
	}
	for i, tx := range t.begun {
		if err := tx.Commit(ctx); err != nil {
			t.begun = t.begun[i:]
			rbErr := t.rollback(ctx)
			return t.fail(errors.Join(fmt.Errorf("commit %s: %w", tx.Collection(), err), rbErr))
		}
	}
	t.begun = nil
	t.done = true
	return nil
}

// Rollback rolls back every begun participant in reverse order.
func (t *MultiCollectionTransaction) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	err := t.rollback(ctx)
	t.done = true
	return err
}

// Close is Rollback for use with defer. It is a no-op after Commit.
func (t *MultiCollectionTransaction) Close(ctx context.Context) {
	_ = t.Rollback(ctx)
}

func (t *MultiCollectionTransaction) rollback(ctx context.Context) error {
	var errs []error
	for i := len(t.begun) - 1; i >= 0; i-- {
		tx := t.begun[i]
		if err := tx.Rollback(ctx); err != nil {
			errs = append(errs, fmt.Errorf("rollback %s: %w", tx.Collection(), err))
		}
	}
	t.begun = nil
	return errors.Join(errs...)
}

func (t *MultiCollectionTransaction) fail(err error) error {
	t.done = true
	return &shared.TransactionError{Collections: t.Collections(), Err: err}
}

// RunInTransaction begins a transaction on every participant, runs fn and
// commits. Any error returned by fn rolls everything back and is returned
// as a *shared.TransactionError wrapping it. A panic in fn rolls back and
// is re-raised.
func RunInTransaction(ctx context.Context, fn func(ctx context.Context) error, participants ...shared.Transactional) error {
	mt := NewMultiCollectionTransaction(participants...)
	txCtx, err := mt.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			mt.Close(ctx)
			panic(r)
		}
	}()

	if err := fn(txCtx); err != nil {
		if rbErr := mt.Rollback(ctx); rbErr != nil {
			err = errors.Join(err, rbErr)
		}
		return &shared.TransactionError{Collections: mt.Collections(), Err: err}
	}
	return mt.Commit(ctx)
}
