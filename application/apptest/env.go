// Package apptest wires the application services over the in-memory store
// for tests.
package apptest

import (
	categoryApp "storefront/application/category"
	orderApp "storefront/application/order"
	paymentApp "storefront/application/payment"
	productApp "storefront/application/product"
	tagApp "storefront/application/tag"
	"storefront/domain/catalog"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/memory"
	"storefront/infrastructure/persistence/retry"

	"go.uber.org/zap"
)

// Env holds the repositories and services of one isolated store
type Env struct {
	Categories *memory.CategoryRepository
	Tags       *memory.TagRepository
	Products   *memory.ProductRepository
	Orders     *memory.OrderRepository
	Payments   *memory.PaymentRepository
	Bus        *shared.EventBus

	CategoryService *categoryApp.ApplicationService
	TagService      *tagApp.ApplicationService
	ProductService  *productApp.ApplicationService
	OrderService    *orderApp.ApplicationService
	PaymentService  *paymentApp.ApplicationService
}

// New builds an Env. logger may be nil.
func New(logger *zap.Logger) *Env {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Env{
		Categories: memory.NewCategoryRepository(),
		Tags:       memory.NewTagRepository(),
		Products:   memory.NewProductRepository(),
		Orders:     memory.NewOrderRepository(),
		Payments:   memory.NewPaymentRepository(),
		Bus:        shared.NewEventBus(),
	}

	uowFactory := persistence.NewUnitOfWorkFactory(e.Bus, retry.Disabled, logger)
	maintainer := catalog.NewMaintainer(e.Categories, e.Tags, e.Products)

	e.CategoryService = categoryApp.NewApplicationService(e.Categories, e.Products, maintainer, uowFactory, logger)
	e.TagService = tagApp.NewApplicationService(e.Tags, e.Products, maintainer, uowFactory, logger)
	e.ProductService = productApp.NewApplicationService(e.Products, e.Categories, e.Tags, maintainer, uowFactory, logger)
	e.OrderService = orderApp.NewApplicationService(e.Orders, e.Products, uowFactory)
	e.PaymentService = paymentApp.NewApplicationService(e.Payments, e.Orders, uowFactory)
	return e
}
