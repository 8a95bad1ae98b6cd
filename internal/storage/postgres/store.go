// ABOUTME: PostgreSQL implementation of the storage backend
// ABOUTME: Matches the production deployment schema with JSONB documents
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/lib/pq"

	"github.com/BigLebowskii/ai-voice-assistant/internal/models"
	"github.com/BigLebowskii/ai-voice-assistant/internal/storage"
)

// Config contains PostgreSQL connection parameters.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Store implements storage.Backend over a PostgreSQL database.
type Store struct {
	mu  sync.Mutex
	db  *sql.DB
	dsn string
}

var _ storage.Backend = (*Store)(nil)

// Open connects to PostgreSQL and bootstraps the schema.
func Open(cfg *Config) (*Store, error) {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, sslMode)

	s := &Store{dsn: dsn}
	if _, err := s.acquire(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// acquire returns a healthy connection handle, reopening it if the
// previous one has died. Every operation goes through here.
func (s *Store) acquire(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		if err := s.db.PingContext(ctx); err == nil {
			return s.db, nil
		}
		_ = s.db.Close()
		s.db = nil
	}

	db, err := sql.Open("postgres", s.dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	s.db = db
	return db, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func marshalDoc(doc models.Document) (string, error) {
	if doc == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	return string(raw), nil
}

func unmarshalDoc(raw sql.NullString) models.Document {
	doc := models.Document{}
	if raw.Valid && raw.String != "" {
		if err := json.Unmarshal([]byte(raw.String), &doc); err != nil {
			return models.Document{}
		}
	}
	return doc
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
