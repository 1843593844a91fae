// Package config loads engine configuration from environment variables
// with sensible defaults. The cmd shell loads a .env file first via
// godotenv, so local overrides need no exported shell variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all application configuration.
type Config struct {
	// Logging
	LogLevel string

	// Session seed
	StartingCash decimal.Decimal
	SavingsRate  decimal.Decimal

	// Default stock return-rate range, used for stocks with no bespoke
	// table entry.
	DefaultReturnMin float64
	DefaultReturnMax float64

	// YearLimit caps total simulated years per session.
	YearLimit float64

	// Persistence
	DBPath   string
	CacheTTL time.Duration
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StartingCash: getEnvDecimal("STARTING_CASH", decimal.NewFromInt(10000)),
		SavingsRate:  getEnvDecimal("SAVINGS_RATE", decimal.NewFromFloat(0.05)),

		DefaultReturnMin: getEnvFloat("DEFAULT_RETURN_MIN", 0.03),
		DefaultReturnMax: getEnvFloat("DEFAULT_RETURN_MAX", 0.07),

		YearLimit: getEnvFloat("YEAR_LIMIT", 100),

		DBPath:   getEnv("DB_PATH", "firefly.db"),
		CacheTTL: getEnvDuration("CACHE_TTL", 5*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
