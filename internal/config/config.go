// ABOUTME: Centralized configuration for the voice assistant backend
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Database driver names accepted by DatabaseDriver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Config holds all configuration for the assistant backend.
type Config struct {
	// Database settings
	DatabaseDriver   string
	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	SQLitePath       string

	// OpenAI settings
	OpenAIKey  string
	ChatModel  string
	MaxRetries int
	RetryDelay time.Duration

	// Token server settings
	APIKey     string
	APISecret  string
	ServerAddr string
	TokenTTL   time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseDriver:   getEnv("ASSISTANT_DB_DRIVER", DriverPostgres),
		PostgresHost:     getEnv("ASSISTANT_PG_HOST", "localhost"),
		PostgresPort:     getEnvInt("ASSISTANT_PG_PORT", 5432),
		PostgresUser:     getEnv("ASSISTANT_PG_USER", "postgres"),
		PostgresPassword: getEnv("ASSISTANT_PG_PASSWORD", "password"),
		PostgresDB:       getEnv("ASSISTANT_PG_DB", "assistant_db"),
		PostgresSSLMode:  getEnv("ASSISTANT_PG_SSLMODE", "disable"),
		SQLitePath:       getEnv("ASSISTANT_SQLITE_PATH", "assistant.db"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		ChatModel:        getEnv("ASSISTANT_OPENAI_MODEL", "gpt-4o-mini"),
		MaxRetries:       getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:       getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		APIKey:           os.Getenv("LIVEKIT_API_KEY"),
		APISecret:        os.Getenv("LIVEKIT_API_SECRET"),
		ServerAddr:       getEnv("ASSISTANT_SERVER_ADDR", ":5001"),
		TokenTTL:         getEnvDuration("ASSISTANT_TOKEN_TTL", 6*time.Hour),
	}

	return cfg, cfg.Validate()
}

// Validate rejects values the rest of the system cannot work with.
func (c *Config) Validate() error {
	if c.DatabaseDriver != DriverPostgres && c.DatabaseDriver != DriverSQLite {
		return fmt.Errorf("ASSISTANT_DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.DatabaseDriver)
	}
	if c.PostgresPort <= 0 || c.PostgresPort > 65535 {
		return fmt.Errorf("ASSISTANT_PG_PORT must be 1-65535, got %d", c.PostgresPort)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("ASSISTANT_TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
