package mysql

import (
	"context"
	"errors"
	"strconv"

	"storefront/domain/product"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence/mysql/po"
	"storefront/infrastructure/persistence/specification"

	"gorm.io/gorm"
)

// ProductRepository MySQL/GORM implementation of product repository
type ProductRepository struct {
	collection
	translator *specification.GormTranslator
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		collection: collection{db: db, name: "products"},
		translator: specification.NewGormTranslator(),
	}
}

func (r *ProductRepository) NextIdentity(ctx context.Context) (int64, error) {
	return r.nextID(ctx)
}

// Save Save product (create or update)
func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	return r.upsert(ctx, po.FromProductDomain(p))
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*product.Product, error) {
	var row po.ProductPO
	if err := r.getDB(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(product.EntityName, id)
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*product.Product, error) {
	var row po.ProductPO
	if err := r.getDB(ctx).First(&row, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundByNameError(product.EntityName, name)
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*product.Product, error) {
	return r.find(r.getDB(ctx))
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []int64) ([]*product.Product, error) {
	if len(ids) == 0 {
		return []*product.Product{}, nil
	}
	return r.find(r.getDB(ctx).Where("id IN ?", ids))
}

func (r *ProductRepository) FindByCategoryID(ctx context.Context, categoryID int64) ([]*product.Product, error) {
	return r.find(r.getDB(ctx).Where("category_id = ?", categoryID))
}

func (r *ProductRepository) FindByTagID(ctx context.Context, tagID int64) ([]*product.Product, error) {
	return r.find(r.getDB(ctx).Where("JSON_CONTAINS(tag_ids, ?)", strconv.FormatInt(tagID, 10)))
}

func (r *ProductRepository) FindBySpecification(ctx context.Context, spec shared.Specification[*product.Product]) ([]*product.Product, error) {
	db := r.getDB(ctx)
	if scope := specification.Translate(r.translator, spec); scope != nil {
		db = scope(db)
	}
	rows, err := r.find(db)
	if err != nil {
		return nil, err
	}
	return specification.Filter(ctx, rows, spec), nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.getDB(ctx).Model(&po.ProductPO{}).Count(&n).Error
	return n, err
}

func (r *ProductRepository) find(db *gorm.DB) ([]*product.Product, error) {
	var rows []po.ProductPO
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*product.Product, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// Compile-time interface implementation check
var _ product.Repository = (*ProductRepository)(nil)
