package mysql

import (
	"context"
	"errors"
	"strconv"

	"storefront/domain/category"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence/mysql/po"
	"storefront/infrastructure/persistence/specification"

	"gorm.io/gorm"
)

// CategoryRepository MySQL/GORM implementation of category repository
// GORM usage specification: Association features are prohibited to maintain DDD aggregate boundaries
type CategoryRepository struct {
	collection
	translator *specification.GormTranslator
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		collection: collection{db: db, name: "categories"},
		translator: specification.NewGormTranslator(),
	}
}

func (r *CategoryRepository) NextIdentity(ctx context.Context) (int64, error) {
	return r.nextID(ctx)
}

// Save Save category (create or update)
func (r *CategoryRepository) Save(ctx context.Context, c *category.Category) error {
	return r.upsert(ctx, po.FromCategoryDomain(c))
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*category.Category, error) {
	var row po.CategoryPO
	if err := r.getDB(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(category.EntityName, id)
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*category.Category, error) {
	var row po.CategoryPO
	if err := r.getDB(ctx).First(&row, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundByNameError(category.EntityName, name)
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]*category.Category, error) {
	return r.find(r.getDB(ctx))
}

func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []int64) ([]*category.Category, error) {
	if len(ids) == 0 {
		return []*category.Category{}, nil
	}
	return r.find(r.getDB(ctx).Where("id IN ?", ids))
}

// FindByProductID reverse lookup on the JSON product id array
func (r *CategoryRepository) FindByProductID(ctx context.Context, productID int64) ([]*category.Category, error) {
	return r.find(r.getDB(ctx).Where("JSON_CONTAINS(product_ids, ?)", strconv.FormatInt(productID, 10)))
}

// FindBySpecification translates the specification to SQL where it can and
// filters the rest in memory.
func (r *CategoryRepository) FindBySpecification(ctx context.Context, spec shared.Specification[*category.Category]) ([]*category.Category, error) {
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

func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.getDB(ctx).Model(&po.CategoryPO{}).Count(&n).Error
	return n, err
}

func (r *CategoryRepository) find(db *gorm.DB) ([]*category.Category, error) {
	var rows []po.CategoryPO
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*category.Category, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// Compile-time interface implementation check
var _ category.Repository = (*CategoryRepository)(nil)
