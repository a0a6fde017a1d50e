package mysql

import (
	"context"
	"errors"

	"storefront/domain/payment"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// PaymentRepository MySQL/GORM implementation of payment repository (insert-only)
type PaymentRepository struct {
	collection
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{collection: collection{db: db, name: "payments"}}
}

func (r *PaymentRepository) NextIdentity(ctx context.Context) (int64, error) {
	return r.nextID(ctx)
}

func (r *PaymentRepository) Insert(ctx context.Context, p *payment.Payment) error {
	return r.writeDB(ctx).Create(po.FromPaymentDomain(p)).Error
}

func (r *PaymentRepository) FindByID(ctx context.Context, id int64) (*payment.Payment, error) {
	var row po.PaymentPO
	if err := r.getDB(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(payment.EntityName, id)
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *PaymentRepository) FindByOrderID(ctx context.Context, orderID int64) ([]*payment.Payment, error) {
	return r.find(r.getDB(ctx).Where("order_id = ?", orderID))
}

func (r *PaymentRepository) FindAll(ctx context.Context) ([]*payment.Payment, error) {
	return r.find(r.getDB(ctx))
}

func (r *PaymentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.getDB(ctx).Model(&po.PaymentPO{}).Count(&n).Error
	return n, err
}

func (r *PaymentRepository) find(db *gorm.DB) ([]*payment.Payment, error) {
	var rows []po.PaymentPO
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*payment.Payment, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

var _ payment.Repository = (*PaymentRepository)(nil)
