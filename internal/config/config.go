package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"pouch-dashboard/internal/models"
)

type Config struct {
	Server   ServerConfig
	Sources  SourcesConfig
	Forecast ForecastConfig
	Logger   LoggerConfig
	Security SecurityConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	LoadTimeout     time.Duration
}

// SourcesConfig points at the CSV exports. Any of them may be left empty.
type SourcesConfig struct {
	ShopifyOrdersCSV string
	TikTokOrdersCSV  string
	SubscriptionsCSV string
	PLCSV            string
}

type ForecastConfig struct {
	SafetyBufferPercent float64
	GrowthRatePercent   float64
	CacheTTL            time.Duration
}

type LoggerConfig struct {
	Service   string
	Level     string
	Format    string
	AddSource bool
}

type SecurityConfig struct {
	EnableRateLimit bool
	RateLimitRPS    int
	RateLimitBurst  int
	AllowedOrigins  []string
	TrustedProxies  []string
}

// Load reads configuration from the environment, after merging a .env file
// from the working directory when one exists. Real environment variables
// take precedence over .env entries.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnvString("SERVER_HOST", "localhost"),
			Port:            getEnvInt("SERVER_PORT", 8084),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			LoadTimeout:     getEnvDuration("DATA_LOAD_TIMEOUT", 30*time.Second),
		},
		Sources: SourcesConfig{
			ShopifyOrdersCSV: getEnvString("SHOPIFY_ORDERS_CSV", "data/shopify_orders.csv"),
			TikTokOrdersCSV:  getEnvString("TIKTOK_ORDERS_CSV", "data/tiktok_orders.csv"),
			SubscriptionsCSV: getEnvString("SUBSCRIPTIONS_CSV", "data/subscriptions.csv"),
			PLCSV:            getEnvString("PNL_CSV", "data/profit_and_loss.csv"),
		},
		Forecast: ForecastConfig{
			SafetyBufferPercent: getEnvFloat("FORECAST_SAFETY_BUFFER", models.DefaultSafetyBufferPercent),
			GrowthRatePercent:   getEnvFloat("FORECAST_GROWTH_RATE", models.DefaultGrowthRatePercent),
			CacheTTL:            getEnvDuration("FORECAST_CACHE_TTL", 10*time.Minute),
		},
		Logger: LoggerConfig{
			Service:   getEnvString("SERVICE_NAME", "pouch-dashboard"),
			Level:     getEnvString("LOG_LEVEL", "info"),
			Format:    getEnvString("LOG_FORMAT", "json"),
			AddSource: getEnvBool("LOG_ADD_SOURCE", true),
		},
		Security: SecurityConfig{
			EnableRateLimit: getEnvBool("SECURITY_RATE_LIMIT_ENABLED", true),
			RateLimitRPS:    getEnvInt("SECURITY_RATE_LIMIT_RPS", 100),
			RateLimitBurst:  getEnvInt("SECURITY_RATE_LIMIT_BURST", 10),
			AllowedOrigins:  getEnvStringSlice("SECURITY_ALLOWED_ORIGINS", []string{"http://localhost:8084"}),
			TrustedProxies:  getEnvStringSlice("SECURITY_TRUSTED_PROXIES", []string{"127.0.0.1"}),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Server.LoadTimeout <= 0 {
		return fmt.Errorf("data load timeout must be positive")
	}

	if err := c.ForecastDefaults().Validate(); err != nil {
		return fmt.Errorf("forecast defaults: %w", err)
	}

	if c.Forecast.CacheTTL <= 0 {
		return fmt.Errorf("forecast cache TTL must be positive")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, c.Logger.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s", c.Logger.Level, strings.Join(validLogLevels, ", "))
	}

	validLogFormats := []string{"json", "text"}
	if !slices.Contains(validLogFormats, c.Logger.Format) {
		return fmt.Errorf("invalid log format %q, must be one of: %s", c.Logger.Format, strings.Join(validLogFormats, ", "))
	}

	if c.Security.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit RPS must be positive")
	}

	if c.Security.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be positive")
	}

	return nil
}

func getEnvString(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

// ForecastDefaults are the slider positions the dashboard starts from.
func (c *Config) ForecastDefaults() models.ForecastParams {
	return models.ForecastParams{
		SafetyBufferPercent: c.Forecast.SafetyBufferPercent,
		GrowthRatePercent:   c.Forecast.GrowthRatePercent,
	}
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
