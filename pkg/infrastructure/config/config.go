// Package config loads application configuration from YAML with
// environment-variable fallbacks for connection settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DataConfig locates the input dataset
type DataConfig struct {
	// Source is "local", "s3" or "postgres"
	Source    string `yaml:"source"`
	Dir       string `yaml:"dir"`
	Delimiter string `yaml:"delimiter"`
	// Encoding is "utf-8" or "windows-1251"
	Encoding string   `yaml:"encoding"`
	S3       S3Config `yaml:"s3"`
}

// S3Config holds bucket settings for S3-backed datasets
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UseSSL          bool   `yaml:"use_ssl"`
}

// ForecastConfig tunes series preparation and model selection
type ForecastConfig struct {
	// Frequency is "daily", "weekly" or "monthly"
	Frequency     string    `yaml:"frequency"`
	Horizon       int       `yaml:"horizon"`
	SeasonLength  int       `yaml:"season_length"`
	Metric        string    `yaml:"metric"`
	MinHistory    int       `yaml:"min_history"`
	SmoothingGrid []float64 `yaml:"smoothing_grid"`
	OutlierFence  float64   `yaml:"outlier_fence"`
}

// InventoryConfig holds policy cost assumptions
type InventoryConfig struct {
	OrderingCost float64 `yaml:"ordering_cost"`
	HoldingRate  float64 `yaml:"holding_rate"`
	ServiceLevel float64 `yaml:"service_level"`
	ABCClassA    float64 `yaml:"abc_a"`
	ABCClassB    float64 `yaml:"abc_b"`
}

// RiskConfig holds supplier risk weights
type RiskConfig struct {
	LeadTimeWeight   float64 `yaml:"lead_time_weight"`
	FillRateWeight   float64 `yaml:"fill_rate_weight"`
	OnTimeWeight     float64 `yaml:"on_time_weight"`
	DefectWeight     float64 `yaml:"defect_weight"`
	SoleSourceWeight float64 `yaml:"sole_source_weight"`
}

// ServerConfig tunes the HTTP dashboard server
type ServerConfig struct {
	Addr            string  `yaml:"addr"`
	RateLimit       float64 `yaml:"rate_limit"`
	RateBurst       int     `yaml:"rate_burst"`
	ShutdownTimeout int     `yaml:"shutdown_timeout_seconds"`
}

// LoggingConfig tunes the structured logger
type LoggingConfig struct {
	Level string `yaml:"level"`
	// Format is "json" or "console"
	Format      string `yaml:"format"`
	Development bool   `yaml:"development"`
}

// PostgresConfig holds database connection settings. Empty fields fall
// back to POSTGRES_* environment variables.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// AppConfig is the root configuration
type AppConfig struct {
	Data      DataConfig      `yaml:"data"`
	Forecast  ForecastConfig  `yaml:"forecast"`
	Inventory InventoryConfig `yaml:"inventory"`
	Risk      RiskConfig      `yaml:"risk"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Postgres  PostgresConfig  `yaml:"postgres"`
}

// DefaultConfig returns a configuration usable with no config file
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Data: DataConfig{
			Source:   "local",
			Dir:      ".",
			Encoding: "utf-8",
		},
		Forecast: ForecastConfig{
			Frequency:     "weekly",
			Horizon:       12,
			SeasonLength:  52,
			Metric:        "mape",
			MinHistory:    8,
			SmoothingGrid: []float64{0.1, 0.3, 0.5, 0.7, 0.9},
			OutlierFence:  3.0,
		},
		Inventory: InventoryConfig{
			OrderingCost: 50,
			HoldingRate:  0.25,
			ServiceLevel: 0.95,
			ABCClassA:    0.80,
			ABCClassB:    0.95,
		},
		Risk: RiskConfig{
			LeadTimeWeight:   0.25,
			FillRateWeight:   0.20,
			OnTimeWeight:     0.20,
			DefectWeight:     0.15,
			SoleSourceWeight: 0.20,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			RateLimit:       50,
			RateBurst:       100,
			ShutdownTimeout: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:   getEnv("POSTGRES_NAME", "supplysight"),
		},
	}
}

// LoadConfig reads a YAML config file over the defaults
func LoadConfig(filename string) (*AppConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config %s: %w", filename, err)
	}
	defer file.Close()

	config := DefaultConfig()
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks cross-field constraints with field-specific errors
func (c *AppConfig) Validate() error {
	switch c.Data.Source {
	case "local", "s3", "postgres":
	default:
		return fmt.Errorf("data.source must be local, s3 or postgres, got %q", c.Data.Source)
	}
	if c.Data.Source == "s3" && c.Data.S3.Bucket == "" {
		return fmt.Errorf("data.s3.bucket is required when data.source is s3")
	}
	if len(c.Data.Delimiter) > 1 {
		return fmt.Errorf("data.delimiter must be a single character, got %q", c.Data.Delimiter)
	}

	switch c.Forecast.Frequency {
	case "daily", "weekly", "monthly":
	default:
		return fmt.Errorf("forecast.frequency must be daily, weekly or monthly, got %q", c.Forecast.Frequency)
	}
	if c.Forecast.Horizon <= 0 {
		return fmt.Errorf("forecast.horizon must be positive, got %d", c.Forecast.Horizon)
	}
	if c.Forecast.MinHistory < 2 {
		return fmt.Errorf("forecast.min_history must be at least 2, got %d", c.Forecast.MinHistory)
	}
	switch c.Forecast.Metric {
	case "mape", "rmse":
	default:
		return fmt.Errorf("forecast.metric must be mape or rmse, got %q", c.Forecast.Metric)
	}

	if c.Inventory.ServiceLevel <= 0 || c.Inventory.ServiceLevel >= 1 {
		return fmt.Errorf("inventory.service_level must be between 0 and 1 exclusive, got %g",
			c.Inventory.ServiceLevel)
	}
	if c.Inventory.OrderingCost <= 0 {
		return fmt.Errorf("inventory.ordering_cost must be positive, got %g", c.Inventory.OrderingCost)
	}
	if c.Inventory.HoldingRate <= 0 {
		return fmt.Errorf("inventory.holding_rate must be positive, got %g", c.Inventory.HoldingRate)
	}
	if c.Inventory.ABCClassA <= 0 || c.Inventory.ABCClassA >= c.Inventory.ABCClassB || c.Inventory.ABCClassB >= 1 {
		return fmt.Errorf("inventory abc thresholds must satisfy 0 < abc_a < abc_b < 1, got %g and %g",
			c.Inventory.ABCClassA, c.Inventory.ABCClassB)
	}

	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("server.rate_limit must be positive, got %g", c.Server.RateLimit)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
