package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	return &config.Config{
		App:      config.AppConfig{Name: "storefront", Version: "test", Env: "test"},
		Server:   config.ServerConfig{Port: "0"},
		Database: config.DatabaseConfig{Type: "memory"},
	}
}

func TestBuildWiresMemoryBackend(t *testing.T) {
	ctx := context.Background()
	app, err := NewBuilder(memoryConfig()).WithoutLoggerInit().Build(ctx)
	require.NoError(t, err)

	require.NoError(t, app.Seed(ctx))
	require.NoError(t, app.Seed(ctx), "seeding twice is a no-op")

	rec := httptest.NewRecorder()
	app.GetServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Total)

	assert.NotEmpty(t, app.EventHistory(), "seeding publishes domain events")
	assert.NoError(t, app.Shutdown())
}

func TestBuildRejectsUnknownBackend(t *testing.T) {
	cfg := memoryConfig()
	cfg.Database.Type = "postgres"

	_, err := NewBuilder(cfg).WithoutLoggerInit().Build(context.Background())
	assert.ErrorContains(t, err, "unknown database type")
}
