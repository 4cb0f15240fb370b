package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 0.05, cfg.TaxRate)
	assert.Equal(t, 500.0, cfg.FreeDeliveryAbove)
	assert.Equal(t, 50.0, cfg.DeliveryFee)
	assert.Equal(t, time.Hour, cfg.ScanInterval)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PIZZA_PORT", "9090")
	t.Setenv("PIZZA_TAX_RATE", "0.12")
	t.Setenv("PIZZA_STOCK_SCAN_INTERVAL", "30m")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 0.12, cfg.TaxRate)
	assert.Equal(t, 30*time.Minute, cfg.ScanInterval)
}
