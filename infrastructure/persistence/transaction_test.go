package persistence_test

import (
	"context"
	"errors"
	"testing"

	"storefront/domain/shared"
	"storefront/domain/tag"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/memory"
	"storefront/infrastructure/persistence/retry"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// recordingParticipant logs begin/commit/rollback calls into a shared journal.
type recordingParticipant struct {
	name       string
	journal    *[]string
	failBegin  bool
	failCommit bool
}

func (p *recordingParticipant) Collection() string { return p.name }

func (p *recordingParticipant) BeginTx(ctx context.Context) (shared.CollectionTx, error) {
	if p.failBegin {
		return nil, errors.New("connection refused")
	}
	*p.journal = append(*p.journal, "begin "+p.name)
	return &recordingTx{p: p}, nil
}

type recordingTx struct{ p *recordingParticipant }

func (tx *recordingTx) Collection() string { return tx.p.name }

func (tx *recordingTx) Commit(ctx context.Context) error {
	if tx.p.failCommit {
		return errors.New("disk full")
	}
	*tx.p.journal = append(*tx.p.journal, "commit "+tx.p.name)
	return nil
}

func (tx *recordingTx) Rollback(ctx context.Context) error {
	*tx.p.journal = append(*tx.p.journal, "rollback "+tx.p.name)
	return nil
}

func TestTxLifecycle(t *testing.T) {
	l := persistence.NewTxLifecycle("tags")
	assert.Equal(t, persistence.TxIdle, l.State())
	assert.Panics(t, l.MustBeWritable, "idle transaction must not accept writes")

	require.NoError(t, l.Begin())
	assert.NotPanics(t, l.MustBeWritable)
	assert.ErrorIs(t, l.Begin(), persistence.ErrTxState)

	require.NoError(t, l.Commit())
	assert.Equal(t, persistence.TxCommitted, l.State())
	assert.ErrorIs(t, l.Rollback(), persistence.ErrTxState)
	assert.Panics(t, l.MustBeWritable)
}

func TestRunInTransactionCommitsEveryParticipant(t *testing.T) {
	var journal []string
	a := &recordingParticipant{name: "tags", journal: &journal}
	b := &recordingParticipant{name: "products", journal: &journal}

	err := persistence.RunInTransaction(context.Background(), func(ctx context.Context) error {
		assert.NotNil(t, persistence.TxFromContext(ctx, "tags"))
		assert.NotNil(t, persistence.TxFromContext(ctx, "products"))
		assert.Nil(t, persistence.TxFromContext(ctx, "orders"))
		return nil
	}, a, b)

	require.NoError(t, err)
	assert.Equal(t, []string{"begin tags", "begin products", "commit tags", "commit products"}, journal)
}

func TestRunInTransactionRollsBackInReverseOrder(t *testing.T) {
	var journal []string
	a := &recordingParticipant{name: "tags", journal: &journal}
	b := &recordingParticipant{name: "products", journal: &journal}
	cause := shared.NewInvalidReferenceError("product", 999)

	err := persistence.RunInTransaction(context.Background(), func(ctx context.Context) error {
		return cause
	}, a, b)

	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrTransactionFailure)
	assert.ErrorIs(t, err, shared.ErrInvalidReference, "original cause must be preserved")
	var txErr *shared.TransactionError
	require.ErrorAs(t, err, &txErr)
	assert.Equal(t, []string{"tags", "products"}, txErr.Collections)
	assert.Equal(t, []string{"begin tags", "begin products", "rollback products", "rollback tags"}, journal)
}

func TestBeginFailureRollsBackEarlierParticipants(t *testing.T) {
	var journal []string
	a := &recordingParticipant{name: "tags", journal: &journal}
	b := &recordingParticipant{name: "products", journal: &journal, failBegin: true}

	called := false
	err := persistence.RunInTransaction(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	}, a, b)

	assert.ErrorIs(t, err, shared.ErrTransactionFailure)
	assert.False(t, called)
	assert.Equal(t, []string{"begin tags", "rollback tags"}, journal)
}

func TestCommitFailureRollsBackRemaining(t *testing.T) {
	var journal []string
	a := &recordingParticipant{name: "orders", journal: &journal, failCommit: true}
	b := &recordingParticipant{name: "payments", journal: &journal}

	err := persistence.RunInTransaction(context.Background(), func(ctx context.Context) error { return nil }, a, b)

	assert.ErrorIs(t, err, shared.ErrTransactionFailure)
	assert.Equal(t, []string{"begin orders", "begin payments", "rollback payments", "rollback orders"}, journal)
}

func TestPanicRollsBackAndPropagates(t *testing.T) {
	var journal []string
	a := &recordingParticipant{name: "tags", journal: &journal}

	assert.PanicsWithValue(t, "boom", func() {
		_ = persistence.RunInTransaction(context.Background(), func(ctx context.Context) error {
			panic("boom")
		}, a)
	})
	assert.Equal(t, []string{"begin tags", "rollback tags"}, journal)
}

func TestCloseAfterCommitIsNoop(t *testing.T) {
	var journal []string
	mt := persistence.NewMultiCollectionTransaction(
		&recordingParticipant{name: "tags", journal: &journal},
		&recordingParticipant{name: "tags", journal: &journal},
	)
	ctx, err := mt.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, mt.Commit(ctx))
	mt.Close(ctx)

	assert.Equal(t, []string{"begin tags", "commit tags"}, journal, "duplicate participants are begun once")
}

func TestMemoryWritesAreInvisibleUntilCommit(t *testing.T) {
	tags := memory.NewTagRepository()
	ctx := context.Background()

	err := persistence.RunInTransaction(ctx, func(txCtx context.Context) error {
		tg, err := tag.NewTag(1, "Fresh", "caught today")
		require.NoError(t, err)
		require.NoError(t, tags.Save(txCtx, tg))

		_, err = tags.FindByID(txCtx, 1)
		assert.NoError(t, err, "writes are visible inside the transaction")
		_, err = tags.FindByID(ctx, 1)
		assert.ErrorIs(t, err, shared.ErrNotFound, "writes are invisible outside the transaction")
		return errors.New("abort")
	}, tags)
	require.Error(t, err)

	n, _ := tags.Count(ctx)
	assert.Zero(t, n)
}

func TestWriteThroughFinishedTransactionPanics(t *testing.T) {
	tags := memory.NewTagRepository()
	mt := persistence.NewMultiCollectionTransaction(tags)
	txCtx, err := mt.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, mt.Commit(txCtx))

	tg, err := tag.NewTag(1, "Fresh", "picked today")
	require.NoError(t, err)
	assert.Panics(t, func() { _ = tags.Save(txCtx, tg) })
}

func TestUnitOfWorkRetriesTransientFailures(t *testing.T) {
	uow := persistence.NewUnitOfWork(nil, nil)
	cfg := retry.DefaultConfig
	cfg.InitialDelay = 0
	cfg.JitterEnabled = false
	uow.SetRetryConfig(cfg)

	attempts := 0
	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 2 {
			return &mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found"}
		}
		return nil
	}, memory.NewTagRepository())

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestUnitOfWorkNeverRetriesDomainErrors(t *testing.T) {
	uow := persistence.NewUnitOfWork(nil, nil)
	uow.SetRetryConfig(retry.DefaultConfig)

	attempts := 0
	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		return shared.NewRetiredEntityError("tag", 1)
	}, memory.NewTagRepository())

	assert.ErrorIs(t, err, shared.ErrRetiredEntity)
	assert.Equal(t, 1, attempts)
}

func TestUnitOfWorkPublishesOnlyAfterSuccess(t *testing.T) {
	bus := shared.NewEventBus()
	var published []string
	require.NoError(t, bus.Subscribe(shared.AllEvents, shared.NewFuncHandler("collect", func(e shared.DomainEvent) error {
		published = append(published, e.EventName())
		return nil
	})))
	factory := persistence.NewUnitOfWorkFactory(bus, retry.Disabled, zap.NewNop())

	failing := factory.New()
	_ = failing.Execute(context.Background(), func(ctx context.Context) error {
		tg, _ := tag.NewTag(1, "Fresh", "picked today")
		failing.RegisterNew(tg)
		return errors.New("abort")
	})
	assert.Empty(t, published)

	ok := factory.New()
	require.NoError(t, ok.Execute(context.Background(), func(ctx context.Context) error {
		tg, _ := tag.NewTag(2, "Frozen", "kept cold")
		ok.RegisterNew(tg)
		return nil
	}))
	assert.Equal(t, []string{"tag.created"}, published)
}

func TestUnitOfWorkLogsFailingHandlers(t *testing.T) {
	bus := shared.NewEventBus()
	require.NoError(t, bus.Subscribe(shared.AllEvents, shared.NewFuncHandler("broken", func(shared.DomainEvent) error {
		return errors.New("mailer down")
	})))
	core, logs := observer.New(zapcore.WarnLevel)
	uow := persistence.NewUnitOfWork(bus, zap.New(core))

	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		tg, _ := tag.NewTag(3, "Smoked", "cold smoked")
		uow.RegisterNew(tg)
		return nil
	})

	require.NoError(t, err, "handler failures do not fail a committed operation")
	assert.Equal(t, 1, logs.FilterMessage("domain event handler failed").Len())
}
