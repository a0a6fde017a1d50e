package mysql

import (
	"context"
	"errors"
	"fmt"

	"storefront/domain/shared"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// collection is embedded by every repository. It makes the repository a
// shared.Transactional participant backed by its own GORM transaction and
// resolves which *gorm.DB a call should use.
type collection struct {
	db   *gorm.DB
	name string
}

func (c collection) Collection() string { return c.name }

// BeginTx opens a database transaction dedicated to this collection.
func (c collection) BeginTx(ctx context.Context) (shared.CollectionTx, error) {
	tx := c.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	gtx := &gormTx{TxLifecycle: persistence.NewTxLifecycle(c.name), tx: tx}
	if err := gtx.Begin(); err != nil {
		tx.Rollback()
		return nil, err
	}
	return gtx, nil
}

// getDB returns the transaction from context if available, otherwise the default db
func (c collection) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := persistence.TxFromContext(ctx, c.name).(*gormTx); ok {
		return tx.tx.WithContext(ctx)
	}
	return c.db.WithContext(ctx)
}

// inTx reports whether ctx carries a transaction for this collection
func (c collection) inTx(ctx context.Context) bool {
	_, ok := persistence.TxFromContext(ctx, c.name).(*gormTx)
	return ok
}

// writeDB is getDB for writes; it panics when the context carries a finished
// transaction for this collection.
func (c collection) writeDB(ctx context.Context) *gorm.DB {
	if tx, ok := persistence.TxFromContext(ctx, c.name).(*gormTx); ok {
		tx.MustBeWritable()
		return tx.tx.WithContext(ctx)
	}
	return c.db.WithContext(ctx)
}

// nextID bumps the collection's row in the sequences table. It always runs
// in its own short transaction so ids are never reused after a rollback.
func (c collection) nextID(ctx context.Context) (int64, error) {
	var next int64
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq po.SequencePO
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&seq, "name = ?", c.name).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			seq = po.SequencePO{Name: c.name}
		} else if err != nil {
			return err
		}
		seq.Value++
		next = seq.Value
		return tx.Save(&seq).Error
	})
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", c.name, err)
	}
	return next, nil
}

// upsert inserts value or overwrites every column of the existing row.
func (c collection) upsert(ctx context.Context, value any) error {
	return c.writeDB(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(value).Error
}

// gormTx is the per-collection transaction handed to MultiCollectionTransaction.
type gormTx struct {
	*persistence.TxLifecycle
	tx *gorm.DB
}

func (t *gormTx) Commit(ctx context.Context) error {
	if err := t.TxLifecycle.Commit(); err != nil {
		return err
	}
	if err := t.tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (t *gormTx) Rollback(ctx context.Context) error {
	if err := t.TxLifecycle.Rollback(); err != nil {
		return err
	}
	return t.tx.Rollback().Error
}

// AutoMigrate creates or updates every table used by the repositories.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(po.All()...)
}

// SyncSequences raises each sequence to at least the highest stored id, for
// databases populated by other tools.
func SyncSequences(ctx context.Context, db *gorm.DB) error {
	tables := map[string]string{
		"categories": po.CategoryPO{}.TableName(),
		"tags":       po.TagPO{}.TableName(),
		"products":   po.ProductPO{}.TableName(),
		"orders":     po.OrderPO{}.TableName(),
		"payments":   po.PaymentPO{}.TableName(),
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for name, table := range tables {
			var maxID int64
			if err := tx.Table(table).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
				return err
			}
			seq := po.SequencePO{Name: name, Value: maxID}
			err := tx.Clauses(clause.OnConflict{
				DoUpdates: clause.Assignments(map[string]any{"value": gorm.Expr("GREATEST(value, ?)", maxID)}),
			}).Create(&seq).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
