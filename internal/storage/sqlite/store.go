// ABOUTME: SQLite implementation of the storage backend
// ABOUTME: Health-checked connection handle with schema bootstrap on open
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/BigLebowskii/ai-voice-assistant/internal/models"
	"github.com/BigLebowskii/ai-voice-assistant/internal/storage"
)

// Store implements storage.Backend over a SQLite database file.
type Store struct {
	mu  sync.Mutex
	db  *sql.DB
	dsn string
}

var _ storage.Backend = (*Store)(nil)

// Open opens or creates the database at path and bootstraps the schema.
func Open(path string) (*Store, error) {
	return openDSN(fmt.Sprintf("file:%s?_foreign_keys=1", path))
}

// OpenInMemory creates a private in-memory database for testing. The pool
// is pinned to a single connection so the database survives between calls.
func OpenInMemory() (*Store, error) {
	return openDSN("file::memory:?_foreign_keys=1")
}

func openDSN(dsn string) (*Store, error) {
	s := &Store{dsn: dsn}
	if _, err := s.acquire(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// acquire returns a healthy connection handle, reopening it if the
// previous one has died. Part of the backend contract: every operation
// goes through here rather than assuming the handle is still live.
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

	db, err := sql.Open("sqlite3", s.dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single pooled connection keeps in-memory databases stable and
	// serializes writers, matching the one-logical-writer model.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

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

// marshalDoc serializes a document for a JSON text column, defaulting a
// nil document to the empty object.
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

// unmarshalDoc deserializes a JSON text column, treating NULL and empty
// text as the empty document.
func unmarshalDoc(raw sql.NullString) models.Document {
	doc := models.Document{}
	if raw.Valid && raw.String != "" {
		if err := json.Unmarshal([]byte(raw.String), &doc); err != nil {
			return models.Document{}
		}
	}
	return doc
}
