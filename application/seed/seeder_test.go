package seed

import (
	"context"
	"testing"

	"storefront/application/apptest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := apptest.New(nil)
	seeder := NewSeeder(env.CategoryService, env.TagService, env.ProductService, nil)

	wrote, err := seeder.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = seeder.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, wrote)

	n, _ := env.Categories.Count(ctx)
	assert.Equal(t, int64(len(categories)), n)
	n, _ = env.Products.Count(ctx)
	assert.Equal(t, int64(len(products)), n)

	crab, err := env.ProductService.GetProductByName(ctx, "Crab")
	require.NoError(t, err)
	require.NotNil(t, crab)
	assert.Equal(t, "Seafood", crab.Category.Name)
	assert.Len(t, crab.Tags, 2)

	local, _ := env.TagService.GetTagByName(ctx, "Local")
	assert.Len(t, local.Products, 3)
}

func TestSeedSkipsWhenCatalogExistsFromElsewhere(t *testing.T) {
	ctx := context.Background()
	env := apptest.New(nil)
	_, err := NewSeeder(env.CategoryService, env.TagService, env.ProductService, nil).Seed(ctx)
	require.NoError(t, err)

	// A fresh seeder has no history of its own; it decides from the store.

	wrote, err := NewSeeder(env.CategoryService, env.TagService, env.ProductService, nil).Seed(ctx)
	require.NoError(t, err)
	assert.False(t, wrote)
}
