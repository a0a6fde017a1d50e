package cmd

import (
	"context"
	"fmt"
	"net/http"

	"storefront/api"
	apicategory "storefront/api/category"
	"storefront/api/health"
	apiorder "storefront/api/order"
	apipayment "storefront/api/payment"
	apiproduct "storefront/api/product"
	apitag "storefront/api/tag"
	categoryapp "storefront/application/category"
	"storefront/application/events"
	orderapp "storefront/application/order"
	paymentapp "storefront/application/payment"
	productapp "storefront/application/product"
	"storefront/application/seed"
	tagapp "storefront/application/tag"
	"storefront/config"
	"storefront/domain/catalog"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/retry"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

// AppBuilder builds an App with customizable components
type AppBuilder struct {
	cfg         *config.Config
	controllers []api.Controller
	skipLogger  bool
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{
		cfg: cfg,
	}
}

// WithController mounts an extra controller next to the default ones
func (b *AppBuilder) WithController(c api.Controller) *AppBuilder {
	b.controllers = append(b.controllers, c)
	return b
}

// WithoutLoggerInit keeps whatever global logger is already installed
func (b *AppBuilder) WithoutLoggerInit() *AppBuilder {
	b.skipLogger = true
	return b
}

// Build wires store, unit of work, services and HTTP layer.
func (b *AppBuilder) Build(ctx context.Context) (*App, error) {
	if !b.skipLogger {
		if err := logger.Init(&b.cfg.Log, b.cfg.App.Env); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}
	log := logger.With(zap.String("component", "app"))

	log.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env),
		zap.String("backend", b.cfg.Database.Type))

	st, err := openStore(ctx, &b.cfg.Database)
	if err != nil {
		return nil, err
	}

	bus := shared.NewEventBus()
	if err := events.Register(bus, logger.With(zap.String("component", "events"))); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to register event handlers: %w", err)
	}

	uowFactory := persistence.NewUnitOfWorkFactory(bus, retry.FromAppConfig(b.cfg), logger.With(zap.String("component", "uow")))
	maintainer := catalog.NewMaintainer(st.categories, st.tags, st.products)

	svcLog := logger.With(zap.String("component", "service"))
	services := &Services{
		Category: categoryapp.NewApplicationService(st.categories, st.products, maintainer, uowFactory, svcLog),
		Tag:      tagapp.NewApplicationService(st.tags, st.products, maintainer, uowFactory, svcLog),
		Product:  productapp.NewApplicationService(st.products, st.categories, st.tags, maintainer, uowFactory, svcLog),
		Order:    orderapp.NewApplicationService(st.orders, st.products, uowFactory),
		Payment:  paymentapp.NewApplicationService(st.payments, st.orders, uowFactory),
	}
	services.Seeder = seed.NewSeeder(services.Category, services.Tag, services.Product, logger.With(zap.String("component", "seed")))

	controllers := append([]api.Controller{
		apicategory.NewController(services.Category),
		apitag.NewController(services.Tag),
		apiproduct.NewController(services.Product),
		apiorder.NewController(services.Order),
		apipayment.NewController(services.Payment),
	}, b.controllers...)

	router := api.NewRouter(b.cfg, health.NewController(b.cfg, st.checks), controllers...)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config:   b.cfg,
		router:   router,
		server:   server,
		store:    st,
		bus:      bus,
		Services: services,
	}, nil
}
