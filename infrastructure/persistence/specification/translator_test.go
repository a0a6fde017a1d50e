package specification

import (
	"context"
	"testing"
	"time"

	"storefront/domain/category"
	"storefront/domain/order"
	"storefront/domain/product"
	"storefront/domain/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type row struct{ ID int64 }

// dryRun opens a MySQL dialect that never talks to a server.
func dryRun(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:pass@tcp(127.0.0.1:3306)/storefront",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func sqlFor[T any](t *testing.T, spec shared.Specification[T]) (string, []any) {
	t.Helper()
	db := dryRun(t).Table("things")
	if scope := Translate(NewGormTranslator(), spec); scope != nil {
		db = scope(db)
	}
	stmt := db.Find(&[]row{}).Statement
	return stmt.SQL.String(), stmt.Vars
}

func TestTranslateLeafSpecifications(t *testing.T) {
	sql, vars := sqlFor(t, product.NewByCategorySpecification(3))
	assert.Contains(t, sql, "category_id = ?")
	assert.Equal(t, []any{int64(3)}, vars)

	sql, vars = sqlFor(t, category.NewContainsProductSpecification(10))
	assert.Contains(t, sql, "JSON_CONTAINS(product_ids, ?)")
	assert.Equal(t, []any{"10"}, vars)

	sql, _ = sqlFor(t, order.NewByStatusSpecification(order.StatusCancelled))
	assert.Contains(t, sql, "status = ?")
}

func TestTranslateComposites(t *testing.T) {
	spec := shared.And(
		product.NewHasTagSpecification(5),
		product.NewByPriceRangeSpecification(decimal.RequireFromString("1"), decimal.Zero),
	)
	sql, _ := sqlFor(t, spec)
	assert.Contains(t, sql, "JSON_CONTAINS(tag_ids, ?)")
	assert.Contains(t, sql, "price >= ?")
	assert.NotContains(t, sql, "price <= ?", "zero max is ignored")

	sql, _ = sqlFor(t, shared.Or(category.NewByNameSpecification("Seafood"), category.NewActiveSpecification()))
	assert.Contains(t, sql, "OR")

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sql, vars := sqlFor(t, shared.And(
		order.NewByStatusSpecification(order.StatusCreated),
		order.NewByDateRangeSpecification(from, time.Time{}),
	))
	assert.Contains(t, sql, "status = ?")
	assert.Contains(t, sql, "created_on >= ?")
	assert.NotContains(t, sql, "created_on <= ?", "zero end is ignored")
	assert.Equal(t, []any{"CREATED", from}, vars)
}

type opaque struct{}

func (opaque) IsSatisfiedBy(ctx context.Context, p *product.Product) bool { return p.Name() == "Fish" }

func TestUntranslatableSpecificationsFallBackToFilter(t *testing.T) {
	tr := NewGormTranslator()
	assert.Nil(t, Translate[*product.Product](tr, opaque{}))
	assert.Nil(t, Translate(tr, shared.Or[*product.Product](opaque{}, product.NewHasTagSpecification(1))))
	assert.NotNil(t, Translate(tr, shared.And[*product.Product](opaque{}, product.NewHasTagSpecification(1))))

	fish, _ := product.NewProduct(1, "Fish", "fresh fish", decimal.RequireFromString("5.99"))
	milk, _ := product.NewProduct(2, "Milk", "whole milk", decimal.RequireFromString("1.20"))
	kept := Filter(context.Background(), []*product.Product{fish, milk}, shared.Specification[*product.Product](opaque{}))
	require.Len(t, kept, 1)
	assert.Equal(t, "Fish", kept[0].Name())
}
