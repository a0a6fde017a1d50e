package memory

import (
	"context"
	"testing"

	"storefront/domain/category"
	"storefront/domain/order"
	"storefront/domain/payment"
	"storefront/domain/product"
	"storefront/domain/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoriesJoinTransactionsByCollection(t *testing.T) {
	participants := map[string]shared.Transactional{
		"categories": NewCategoryRepository(),
		"tags":       NewTagRepository(),
		"products":   NewProductRepository(),
		"orders":     NewOrderRepository(),
		"payments":   NewPaymentRepository(),
	}
	for want, repo := range participants {
		assert.Equal(t, want, repo.Collection())

		tx, err := repo.BeginTx(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, tx.Collection())
		require.NoError(t, tx.Rollback(context.Background()))
	}
}

func TestNextIdentityFollowsStoredIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository()

	id, _ := repo.NextIdentity(ctx)
	assert.Equal(t, int64(1), id)

	c, err := category.NewCategory(41, "Seafood", "from the sea")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, c))

	id, _ = repo.NextIdentity(ctx)
	assert.Equal(t, int64(42), id)
}

func TestLoadedAggregatesDoNotAliasTheStore(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository()
	c, _ := category.NewCategory(1, "Seafood", "from the sea")
	require.NoError(t, repo.Save(ctx, c))

	loaded, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, loaded.AddProduct(10))

	again, _ := repo.FindByID(ctx, 1)
	assert.Empty(t, again.Products(), "unsaved changes must not leak into the store")
}

func TestCategoryLookups(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository()
	seafood, _ := category.NewCategory(1, "Seafood", "from the sea")
	_ = seafood.AddProduct(10)
	dairy, _ := category.NewCategory(2, "Dairy", "milk and cheese")
	require.NoError(t, repo.Save(ctx, seafood))
	require.NoError(t, repo.Save(ctx, dairy))

	byName, err := repo.FindByName(ctx, "Dairy")
	require.NoError(t, err)
	assert.Equal(t, int64(2), byName.ID())

	_, err = repo.FindByName(ctx, "Bakery")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindByID(ctx, 3)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	many, _ := repo.FindByIDs(ctx, []int64{2, 99, 1})
	assert.Len(t, many, 2, "unknown ids are skipped")

	owners, _ := repo.FindByProductID(ctx, 10)
	require.Len(t, owners, 1)
	assert.Equal(t, int64(1), owners[0].ID())

	bySpec, _ := repo.FindBySpecification(ctx, category.NewContainsProductSpecification(10))
	assert.Len(t, bySpec, 1)

	n, _ := repo.Count(ctx)
	assert.Equal(t, int64(2), n)
}

func TestProductReverseLookups(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	fish, _ := product.NewProduct(10, "Fish", "fresh fish", decimal.RequireFromString("5.99"))
	_ = fish.AssignCategory(product.CategorySnapshot{ID: 1, Name: "Seafood"})
	_ = fish.AddTag(5)
	milk, _ := product.NewProduct(11, "Milk", "whole milk", decimal.RequireFromString("1.20"))
	require.NoError(t, repo.Save(ctx, fish))
	require.NoError(t, repo.Save(ctx, milk))

	inCategory, _ := repo.FindByCategoryID(ctx, 1)
	require.Len(t, inCategory, 1)
	assert.Equal(t, "Fish", inCategory[0].Name())

	tagged, _ := repo.FindByTagID(ctx, 5)
	assert.Len(t, tagged, 1)

	cheap, _ := repo.FindBySpecification(ctx, product.NewByPriceRangeSpecification(decimal.Zero, decimal.RequireFromString("2")))
	require.Len(t, cheap, 1)
	assert.Equal(t, "Milk", cheap[0].Name())
}

func TestOrderRepositoryKeepsLineItems(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	o, _ := order.NewOrder(1)
	_ = o.AddLineItem(order.ProductSnapshot{ID: 10, Name: "Fish", Price: decimal.RequireFromString("5.99")}, 2)
	require.NoError(t, repo.Save(ctx, o))

	loaded, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, loaded.Total().Equal(decimal.RequireFromString("11.98")))

	_, err = repo.FindByID(ctx, 2)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestPaymentsAreInsertOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRepository()
	total := decimal.RequireFromString("11.98")
	p, err := payment.NewPayment(1, 7, total, total)
	require.NoError(t, err)

	require.NoError(t, repo.Insert(ctx, p))
	assert.Error(t, repo.Insert(ctx, p), "second insert with the same id")

	byOrder, _ := repo.FindByOrderID(ctx, 7)
	require.Len(t, byOrder, 1)
	assert.True(t, byOrder[0].Change().IsZero())
}
