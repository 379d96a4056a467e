package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pouch-dashboard/internal/models"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8084, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.LoadTimeout)
	assert.Equal(t, "data/shopify_orders.csv", cfg.Sources.ShopifyOrdersCSV)
	assert.Equal(t, models.DefaultSafetyBufferPercent, cfg.Forecast.SafetyBufferPercent)
	assert.Equal(t, 10*time.Minute, cfg.Forecast.CacheTTL)
	assert.Equal(t, "localhost:8084", cfg.Address())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("PNL_CSV", "/tmp/pl.csv")
	t.Setenv("TIKTOK_ORDERS_CSV", "")
	t.Setenv("FORECAST_SAFETY_BUFFER", "25")
	t.Setenv("FORECAST_GROWTH_RATE", "-10")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "/tmp/pl.csv", cfg.Sources.PLCSV)
	assert.Empty(t, cfg.Sources.TikTokOrdersCSV)
	assert.Equal(t, "text", cfg.Logger.Format)

	defaults := cfg.ForecastDefaults()
	assert.Equal(t, 25.0, defaults.SafetyBufferPercent)
	assert.Equal(t, -10.0, defaults.GrowthRatePercent)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port", "SERVER_PORT", "70000"},
		{"buffer", "FORECAST_SAFETY_BUFFER", "75"},
		{"growth", "FORECAST_GROWTH_RATE", "-40"},
		{"log level", "LOG_LEVEL", "verbose"},
		{"log format", "LOG_FORMAT", "xml"},
		{"rate limit", "SECURITY_RATE_LIMIT_RPS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_DURATION", "bogus")
	assert.Equal(t, time.Second, getEnvDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_FLOAT", "1.5")
	assert.Equal(t, 1.5, getEnvFloat("TEST_FLOAT", 0))

	t.Setenv("TEST_SLICE", "a,b")
	assert.Equal(t, []string{"a", "b"}, getEnvStringSlice("TEST_SLICE", nil))

	t.Setenv("TEST_BOOL", "nope")
	assert.True(t, getEnvBool("TEST_BOOL", true))
}
