package mysql

import (
	"context"
	"errors"

	"storefront/domain/order"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence/mysql/po"
	"storefront/infrastructure/persistence/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository MySQL/GORM implementation of order repository
// DDD principle: Repository is only responsible for persistence of aggregate roots, not event publishing
// GORM usage specification: Association features are prohibited to maintain DDD aggregate boundaries
type OrderRepository struct {
	collection
	translator *specification.GormTranslator
}

// NewOrderRepository Create order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{
		collection: collection{db: db, name: "orders"},
		translator: specification.NewGormTranslator(),
	}
}

// NextIdentity Generate new order ID
func (r *OrderRepository) NextIdentity(ctx context.Context) (int64, error) {
	return r.nextID(ctx)
}

// Save Save order (create or update)
// Note: Manually manage saving of orders and line items, do not use GORM associations
// Inside a coordinator transaction it uses the orders transaction from context;
// standalone it creates its own transaction for atomicity
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	orderPO, itemPOs := po.FromOrderDomain(o)

	if r.inTx(ctx) {
		return r.saveWithTx(r.writeDB(ctx), orderPO, itemPOs)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, orderPO, itemPOs)
	})
}

// saveWithTx performs the actual save operations within a transaction
func (r *OrderRepository) saveWithTx(tx *gorm.DB, orderPO *po.OrderPO, itemPOs []po.OrderLineItemPO) error {
	if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(orderPO).Error; err != nil {
		return err
	}

	// Delete old line items (simple strategy: delete then insert)
	if err := tx.Where("order_id = ?", orderPO.ID).Delete(&po.OrderLineItemPO{}).Error; err != nil {
		return err
	}

	if len(itemPOs) > 0 {
		if err := tx.Create(&itemPOs).Error; err != nil {
			return err
		}
	}
	return nil
}

// FindByID Find order by ID
func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	db := r.getDB(ctx)
	var orderPO po.OrderPO

	if err := db.First(&orderPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, err
	}

	// Manually query line items (do not use GORM's Preload to keep aggregate boundaries clear)
	var itemPOs []po.OrderLineItemPO
	if err := db.Where("order_id = ?", id).Order("position").Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	return orderPO.ToDomain(itemPOs), nil
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	return r.find(ctx, r.getDB(ctx))
}

func (r *OrderRepository) FindBySpecification(ctx context.Context, spec shared.Specification[*order.Order]) ([]*order.Order, error) {
	db := r.getDB(ctx)
	if scope := specification.Translate(r.translator, spec); scope != nil {
		db = scope(db)
	}
	orders, err := r.find(ctx, db)
	if err != nil {
		return nil, err
	}
	return specification.Filter(ctx, orders, spec), nil
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.getDB(ctx).Model(&po.OrderPO{}).Count(&n).Error
	return n, err
}

// find loads the matching orders, then their line items in one query
func (r *OrderRepository) find(ctx context.Context, db *gorm.DB) ([]*order.Order, error) {
	var orderPOs []po.OrderPO
	if err := db.Order("id").Find(&orderPOs).Error; err != nil {
		return nil, err
	}
	if len(orderPOs) == 0 {
		return []*order.Order{}, nil
	}

	ids := make([]int64, len(orderPOs))
	for i, o := range orderPOs {
		ids[i] = o.ID
	}
	var itemPOs []po.OrderLineItemPO
	if err := r.getDB(ctx).Where("order_id IN ?", ids).Order("order_id, position").Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	byOrder := make(map[int64][]po.OrderLineItemPO, len(orderPOs))
	for _, item := range itemPOs {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	orders := make([]*order.Order, len(orderPOs))
	for i := range orderPOs {
		orders[i] = orderPOs[i].ToDomain(byOrder[orderPOs[i].ID])
	}
	return orders, nil
}

// Compile-time interface implementation check
var _ order.Repository = (*OrderRepository)(nil)
