// Package config provides configuration for the dashboard service.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the dashboard service configuration.
type Config struct {
	// Server settings
	HTTPPort int
	Env      string

	// Database. A postgres:// URL selects the Postgres store; anything
	// else is treated as a SQLite DSN.
	DatabaseURL string

	// Identity recorded on alert resolutions and created workflows.
	// Stands in for an authenticated principal.
	Identity string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables. In development a
// .env file is read if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", "file:dashboard.db?cache=shared&mode=rwc"),
		Identity:    getEnv("DASHBOARD_IDENTITY", "dashboard_user"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
