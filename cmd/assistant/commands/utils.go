// ABOUTME: Shared helpers for CLI commands
// ABOUTME: Opens the configured storage backend
package commands

import (
	"fmt"

	"github.com/BigLebowskii/ai-voice-assistant/internal/config"
	"github.com/BigLebowskii/ai-voice-assistant/internal/storage"
	"github.com/BigLebowskii/ai-voice-assistant/internal/storage/postgres"
	"github.com/BigLebowskii/ai-voice-assistant/internal/storage/sqlite"
)

// openBackend connects to whichever database the configuration selects.
func openBackend(cfg *config.Config) (storage.Backend, error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		return postgres.Open(&postgres.Config{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPassword,
			DBName:   cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSLMode,
		})
	case config.DriverSQLite:
		return sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}
