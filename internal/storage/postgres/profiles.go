// ABOUTME: User profile operations for the PostgreSQL backend
// ABOUTME: Upsert pairs profile creation with a lazy empty settings row
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/BigLebowskii/ai-voice-assistant/internal/models"
)

// GetUserProfile returns the profile for userID, or nil when absent.
func (s *Store) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	db, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}

	var (
		name            sql.NullString
		prefs           sql.NullString
		lastInteraction sql.NullTime
	)
	err = db.QueryRowContext(ctx, `
		SELECT name, preferences, last_interaction
		FROM user_profiles
		WHERE user_id = $1
	`, userID).Scan(&name, &prefs, &lastInteraction)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	profile := &models.UserProfile{
		UserID:      userID,
		Name:        name.String,
		Preferences: unmarshalDoc(prefs),
	}
	if lastInteraction.Valid {
		profile.LastInteraction = lastInteraction.Time
	}
	return profile, nil
}

// UpsertUserProfile creates the profile and its empty settings row when
// absent, or updates an existing one. last_interaction always advances;
// name and preferences change only when supplied.
func (s *Store) UpsertUserProfile(ctx context.Context, userID string, name *string, preferences models.Document) (*models.UserProfile, error) {
	db, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM user_profiles WHERE user_id = $1`, userID).Scan(&exists)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		newName := ""
		if name != nil {
			newName = *name
		}
		prefsJSON, err := marshalDoc(preferences)
		if err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_profiles (user_id, name, preferences, last_interaction)
			VALUES ($1, $2, $3, $4)
		`, userID, newName, prefsJSON, now); err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_settings (user_id, voice_settings, notification_preferences, privacy_settings)
			VALUES ($1, '{}', '{}', '{}')
		`, userID); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		query := `UPDATE user_profiles SET last_interaction = $1`
		args := []any{now}
		if name != nil {
			query += `, name = $` + strconv.Itoa(len(args)+1)
			args = append(args, *name)
		}
		if preferences != nil {
			prefsJSON, err := marshalDoc(preferences)
			if err != nil {
				return nil, err
			}
			query += `, preferences = $` + strconv.Itoa(len(args)+1)
			args = append(args, prefsJSON)
		}
		query += ` WHERE user_id = $` + strconv.Itoa(len(args)+1)
		args = append(args, userID)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetUserProfile(ctx, userID)
}
