package mysql

import (
	"testing"
	"time"

	"storefront/config"

	"github.com/stretchr/testify/assert"
)

func TestConfigFromCarriesSQLLogSettings(t *testing.T) {
	c := ConfigFrom(&config.DatabaseConfig{
		Host:          "db",
		Port:          "3307",
		Username:      "shop",
		Password:      "secret",
		Database:      "storefront",
		LogLevel:      "info",
		SlowThreshold: 50 * time.Millisecond,
		LogNotFound:   true,
	})

	assert.Equal(t, 50*time.Millisecond, c.SlowThreshold)
	assert.True(t, c.LogNotFound)
	assert.Equal(t, "info", c.LogLevel)
	assert.Contains(t, c.DSN(), "shop:secret@tcp(db:3307)/storefront?parseTime=true")
	assert.NotNil(t, c.SQLLogger())
}

func TestApplyDefaults(t *testing.T) {
	c := &Config{MaxOpenConns: 4, MaxIdleConns: 8}
	c.applyDefaults()

	assert.Equal(t, 4, c.MaxOpenConns)
	assert.Equal(t, 4, c.MaxIdleConns, "idle connections are capped by open connections")
	assert.Equal(t, DefaultConnMaxLifetime, c.ConnMaxLifetime)
	assert.Equal(t, DefaultConnMaxIdleTime, c.ConnMaxIdleTime)
}
