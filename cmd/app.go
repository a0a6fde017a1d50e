package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"storefront/api"
	categoryapp "storefront/application/category"
	orderapp "storefront/application/order"
	paymentapp "storefront/application/payment"
	productapp "storefront/application/product"
	"storefront/application/seed"
	tagapp "storefront/application/tag"
	"storefront/config"
	"storefront/domain/shared"
	"storefront/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services groups the application services
type Services struct {
	Category *categoryapp.ApplicationService
	Tag      *tagapp.ApplicationService
	Product  *productapp.ApplicationService
	Order    *orderapp.ApplicationService
	Payment  *paymentapp.ApplicationService
	Seeder   *seed.Seeder
}

// App Application
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	store  *store
	bus    *shared.EventBus

	Services *Services
}

// Seed writes sample data when the category collection is empty; checked on every call
func (a *App) Seed(ctx context.Context) error {
	seeded, err := a.Services.Seeder.Seed(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	logger.Info("Seed finished", zap.Bool("seeded", seeded))
	return nil
}

// Run starts the HTTP server and shuts down gracefully when ctx is cancelled
func (a *App) Run(ctx context.Context) error {
	if a.config.Seed.Enabled {
		if err := a.Seed(ctx); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			zap.String("addr", a.server.Addr),
			zap.String("health", "/api/v1/health"))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	return a.Shutdown()
}

// Shutdown stops accepting requests and closes the store
func (a *App) Shutdown() error {
	timeout := a.config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("Shutting down server", zap.Duration("timeout", timeout))
	serverErr := a.server.Shutdown(ctx)
	storeErr := a.store.Close()
	if serverErr != nil {
		return fmt.Errorf("server shutdown: %w", serverErr)
	}
	if storeErr != nil {
		return fmt.Errorf("close store: %w", storeErr)
	}

	logger.Info("Server stopped")
	return nil
}

// GetServer returns the gin engine (for tests)
func (a *App) GetServer() *gin.Engine {
	return a.router.GetEngine()
}

// EventHistory returns what the event bus published
func (a *App) EventHistory() []shared.EventPublishResult {
	return a.bus.GetPublishHistory()
}
