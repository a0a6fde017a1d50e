//go:build integration

package mysql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/domain/category"
	"storefront/domain/order"
	"storefront/domain/payment"
	"storefront/domain/product"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8.0",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "testpass",
			"MYSQL_DATABASE":      "storefront",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").
			WithStartupTimeout(120 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "start mysql container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "3306")
	require.NoError(t, err)

	cfg := &mysql.Config{
		Host:        host,
		Port:        port.Port(),
		Username:    "root",
		Password:    "testpass",
		Database:    "storefront",
		LogLevel:    "silent",
		AutoMigrate: true,
	}
	db, err := cfg.Connect(ctx)
	require.NoError(t, err)
	return db
}

func TestMySQLRepositories(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	categories := mysql.NewCategoryRepository(db)
	products := mysql.NewProductRepository(db)
	orders := mysql.NewOrderRepository(db)
	payments := mysql.NewPaymentRepository(db)

	t.Run("sequences hand out increasing ids", func(t *testing.T) {
		first, err := categories.NextIdentity(ctx)
		require.NoError(t, err)
		second, err := categories.NextIdentity(ctx)
		require.NoError(t, err)
		assert.Equal(t, first+1, second)
	})

	t.Run("category and product round trip", func(t *testing.T) {
		cid, _ := categories.NextIdentity(ctx)
		seafood, err := category.NewCategory(cid, "Seafood", "from the sea")
		require.NoError(t, err)

		pid, _ := products.NextIdentity(ctx)
		fish, err := product.NewProduct(pid, "Fish", "fresh fish", decimal.RequireFromString("5.99"))
		require.NoError(t, err)
		require.NoError(t, seafood.AddProduct(pid))
		require.NoError(t, fish.AssignCategory(product.CategorySnapshot{ID: cid, Name: "Seafood"}))
		require.NoError(t, fish.AddTag(7))

		require.NoError(t, categories.Save(ctx, seafood))
		require.NoError(t, products.Save(ctx, fish))

		owners, err := categories.FindByProductID(ctx, pid)
		require.NoError(t, err)
		require.Len(t, owners, 1)
		assert.Equal(t, "Seafood", owners[0].Name())

		tagged, err := products.FindByTagID(ctx, 7)
		require.NoError(t, err)
		require.Len(t, tagged, 1)
		assert.True(t, tagged[0].Price().Equal(decimal.RequireFromString("5.99")))

		inCategory, err := products.FindBySpecification(ctx, product.NewByCategorySpecification(cid))
		require.NoError(t, err)
		assert.Len(t, inCategory, 1)

		_, err = categories.FindByID(ctx, 99999)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rollback discards writes across collections", func(t *testing.T) {
		cid, _ := categories.NextIdentity(ctx)
		boom := errors.New("boom")

		err := persistence.RunInTransaction(ctx, func(ctx context.Context) error {
			c, err := category.NewCategory(cid, "Bakery", "bread and cakes")
			if err != nil {
				return err
			}
			if err := categories.Save(ctx, c); err != nil {
				return err
			}
			return boom
		}, categories, products)

		assert.ErrorIs(t, err, boom)
		_, err = categories.FindByID(ctx, cid)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("order line items keep their order", func(t *testing.T) {
		oid, _ := orders.NextIdentity(ctx)
		o, err := order.NewOrder(oid)
		require.NoError(t, err)
		require.NoError(t, o.AddLineItem(order.ProductSnapshot{ID: 2, Name: "Milk", Price: decimal.RequireFromString("1.20")}, 1))
		require.NoError(t, o.AddLineItem(order.ProductSnapshot{ID: 1, Name: "Bread", Price: decimal.RequireFromString("2.50")}, 2))
		require.NoError(t, orders.Save(ctx, o))

		require.NoError(t, o.RemoveLineItem(2, 1))
		require.NoError(t, orders.Save(ctx, o))

		loaded, err := orders.FindByID(ctx, oid)
		require.NoError(t, err)
		require.Len(t, loaded.LineItems(), 1)
		assert.Equal(t, int64(1), loaded.LineItems()[0].Product().ID)
		assert.True(t, loaded.Total().Equal(decimal.RequireFromString("5.00")))

		_, err = orders.FindByID(ctx, 99999)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("payments are insert only", func(t *testing.T) {
		id, _ := payments.NextIdentity(ctx)
		total := decimal.RequireFromString("5.00")
		p, err := payment.NewPayment(id, 1, decimal.RequireFromString("10"), total)
		require.NoError(t, err)
		require.NoError(t, payments.Insert(ctx, p))
		assert.ErrorIs(t, payments.Insert(ctx, p), gorm.ErrDuplicatedKey)

		byOrder, err := payments.FindByOrderID(ctx, 1)
		require.NoError(t, err)
		require.Len(t, byOrder, 1)
		assert.True(t, byOrder[0].Change().Equal(decimal.RequireFromString("5")))
	})
}
