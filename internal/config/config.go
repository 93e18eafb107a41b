// Package config loads environment-based defaults. Flags still win; the
// environment only fills in values the user did not pass on the command
// line.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment-derived defaults.
type Config struct {
	Latitude  *float64 // MOONWATCH_LAT
	Longitude *float64 // MOONWATCH_LON
	City      string   // MOONWATCH_CITY
	Refresh   time.Duration
	LogLevel  string
}

// Load reads a .env file if present, then the process environment.
// A missing .env file is not an error.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		City:     os.Getenv("MOONWATCH_CITY"),
		LogLevel: getEnv("MOONWATCH_LOG_LEVEL", ""),
	}

	cfg.Latitude = floatEnv("MOONWATCH_LAT")
	cfg.Longitude = floatEnv("MOONWATCH_LON")

	if raw := os.Getenv("MOONWATCH_REFRESH"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cfg.Refresh = d
		}
	}

	return cfg
}

// HasCoordinate reports whether both halves of a coordinate were provided.
func (c Config) HasCoordinate() bool {
	return c.Latitude != nil && c.Longitude != nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func floatEnv(key string) *float64 {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
