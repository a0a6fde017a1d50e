package cmd

import (
	"context"
	"fmt"

	"storefront/api/health"
	"storefront/config"
	"storefront/domain/category"
	"storefront/domain/order"
	"storefront/domain/payment"
	"storefront/domain/product"
	"storefront/domain/tag"
	"storefront/infrastructure/persistence/memory"
	"storefront/infrastructure/persistence/mysql"
	"storefront/pkg/logger"

	"gorm.io/gorm"
)

// store is one backend's set of collections
type store struct {
	categories category.Repository
	tags       tag.Repository
	products   product.Repository
	orders     order.Repository
	payments   payment.Repository

	db     *gorm.DB
	checks map[string]health.CheckFunc
}

func openStore(ctx context.Context, cfg *config.DatabaseConfig) (*store, error) {
	switch cfg.Type {
	case "", "memory":
		logger.Info("Using in-memory document store")
		return &store{
			categories: memory.NewCategoryRepository(),
			tags:       memory.NewTagRepository(),
			products:   memory.NewProductRepository(),
			orders:     memory.NewOrderRepository(),
			payments:   memory.NewPaymentRepository(),
		}, nil
	case "mysql":
		return openMySQLStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown database type %q", cfg.Type)
	}
}

func openMySQLStore(ctx context.Context, cfg *config.DatabaseConfig) (*store, error) {
	logger.Info("Using MySQL/GORM persistence layer")

	db, err := mysql.ConfigFrom(cfg).Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	return &store{
		categories: mysql.NewCategoryRepository(db),
		tags:       mysql.NewTagRepository(db),
		products:   mysql.NewProductRepository(db),
		orders:     mysql.NewOrderRepository(db),
		payments:   mysql.NewPaymentRepository(db),
		db:         db,
		checks: map[string]health.CheckFunc{
			"database": func(ctx context.Context) error { return mysql.Ping(ctx, db) },
		},
	}, nil
}

func (s *store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
