// Package common provides shared utilities for the cashflow analyzer
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/othmane-zizi-pro/cashflow-mtl/internal/models"
)

// Config holds all configuration for the analyzer server
type Config struct {
	Environment string                 `toml:"environment"`
	Server      ServerConfig           `toml:"server"`
	Storage     StorageConfig          `toml:"storage"`
	Logging     LoggingConfig          `toml:"logging"`
	Financial   models.FinancialConfig `toml:"financial"`
	Forecast    ForecastConfig         `toml:"forecast"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	RateLimit int    `toml:"rate_limit"` // requests per second, 0 disables throttling
}

// StorageConfig holds the property store path.
type StorageConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ForecastConfig holds the baseline revenue forecast parameters.
// The nightly base rates approximate Montreal short-term-rental averages
// per bedroom count; bedroom counts beyond the table extrapolate from the
// largest entry.
type ForecastConfig struct {
	BaseRates       map[string]float64 `toml:"base_rates"`        // bedrooms -> nightly rate
	BathroomUplift  float64            `toml:"bathroom_uplift"`   // added per bathroom beyond the first
	MinNightlyRate  float64            `toml:"min_nightly_rate"`  // floor applied to every estimate
	OccupancyRate   float64            `toml:"occupancy_rate"`    // fraction of nights booked (0-1)
	HostRevenueRate float64            `toml:"host_revenue_rate"` // share of gross kept after platform fees
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      5001,
			RateLimit: 0,
		},
		Storage: StorageConfig{
			Path: "data/properties",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Financial: models.DefaultFinancialConfig(),
		Forecast: ForecastConfig{
			BaseRates: map[string]float64{
				"1": 95,
				"2": 140,
				"3": 185,
			},
			BathroomUplift:  15,
			MinNightlyRate:  50,
			OccupancyRate:   0.65,
			HostRevenueRate: 0.97,
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Financial.Validate(); err != nil {
		return nil, fmt.Errorf("invalid financial config: %w", err)
	}
	if err := validateForecast(&config.Forecast); err != nil {
		return nil, fmt.Errorf("invalid forecast config: %w", err)
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("CASHFLOW_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("CASHFLOW_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("CASHFLOW_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("CASHFLOW_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("CASHFLOW_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if rate := os.Getenv("CASHFLOW_INTEREST_RATE"); rate != "" {
		if v, err := strconv.ParseFloat(rate, 64); err == nil {
			config.Financial.AnnualInterestRate = v
		}
	}

	if rate := os.Getenv("CASHFLOW_DOWN_PAYMENT_RATE"); rate != "" {
		if v, err := strconv.ParseFloat(rate, 64); err == nil {
			config.Financial.DownPaymentRate = v
		}
	}
}

// validateForecast checks forecast parameters are usable.
func validateForecast(f *ForecastConfig) error {
	if f.OccupancyRate < 0 || f.OccupancyRate > 1 {
		return fmt.Errorf("occupancy_rate must be between 0 and 1, got %v", f.OccupancyRate)
	}
	if f.HostRevenueRate <= 0 || f.HostRevenueRate > 1 {
		return fmt.Errorf("host_revenue_rate must be in (0, 1], got %v", f.HostRevenueRate)
	}
	if f.MinNightlyRate < 0 {
		return fmt.Errorf("min_nightly_rate must be non-negative, got %v", f.MinNightlyRate)
	}
	for k, v := range f.BaseRates {
		if v <= 0 {
			return fmt.Errorf("base_rates[%s] must be positive, got %v", k, v)
		}
	}
	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
