// ABOUTME: Conversation history operations for the SQLite backend
// ABOUTME: Append-only rows; each append touches the profile in the same transaction
package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/BigLebowskii/ai-voice-assistant/internal/models"
)

// AppendConversation inserts one exchange and advances the profile's
// last_interaction to the same instant. The insert fails when no profile
// exists for userID; callers must upsert the profile first.
func (s *Store) AppendConversation(ctx context.Context, userID, query, response string, convContext models.Document) error {
	db, err := s.acquire(ctx)
	if err != nil {
		return err
	}

	contextJSON, err := marshalDoc(convContext)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO conversations (user_id, timestamp, query, response, context)
		VALUES (?, ?, ?, ?, ?)
	`, userID, now, query, response, contextJSON); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE user_profiles SET last_interaction = ? WHERE user_id = ?
	`, now, userID); err != nil {
		return err
	}

	return tx.Commit()
}

// RecentConversations returns up to limit exchanges, most recent first.
func (s *Store) RecentConversations(ctx context.Context, userID string, limit int) ([]models.Conversation, error) {
	db, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT timestamp, query, response, context
		FROM conversations
		WHERE user_id = ?
		ORDER BY timestamp DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	conversations := []models.Conversation{}
	for rows.Next() {
		var (
			conv       models.Conversation
			contextRaw sql.NullString
		)
		if err := rows.Scan(&conv.Timestamp, &conv.Query, &conv.Response, &contextRaw); err != nil {
			return nil, err
		}
		conv.Context = unmarshalDoc(contextRaw)
		conversations = append(conversations, conv)
	}
	return conversations, rows.Err()
}
