// ABOUTME: User settings operations for the PostgreSQL backend
// ABOUTME: Updates touch exactly one category column, creating the row lazily
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/BigLebowskii/ai-voice-assistant/internal/models"
	"github.com/BigLebowskii/ai-voice-assistant/internal/storage"
)

// UpdateUserSettings overwrites one settings category. The row is created
// with empty documents first when missing; the other two categories are
// never touched.
func (s *Store) UpdateUserSettings(ctx context.Context, userID string, category models.SettingCategory, settings models.Document) error {
	if !category.Valid() {
		return fmt.Errorf("%w: %q", storage.ErrInvalidSettingCategory, category)
	}

	db, err := s.acquire(ctx)
	if err != nil {
		return err
	}

	settingsJSON, err := marshalDoc(settings)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO user_settings (user_id, voice_settings, notification_preferences, privacy_settings)
		VALUES ($1, '{}', '{}', '{}')
		ON CONFLICT (user_id) DO NOTHING
	`, userID); err != nil {
		return err
	}

	// The column name comes from the validated enum above, never from
	// caller input directly.
	query := fmt.Sprintf(`UPDATE user_settings SET %s = $1 WHERE user_id = $2`, category)
	if _, err := tx.ExecContext(ctx, query, settingsJSON, userID); err != nil {
		return err
	}

	return tx.Commit()
}

// GetUserSettings returns the settings row for userID, or nil when absent.
func (s *Store) GetUserSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	db, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}

	var voice, notifications, privacy sql.NullString
	err = db.QueryRowContext(ctx, `
		SELECT voice_settings, notification_preferences, privacy_settings
		FROM user_settings
		WHERE user_id = $1
	`, userID).Scan(&voice, &notifications, &privacy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &models.UserSettings{
		UserID:                  userID,
		VoiceSettings:           unmarshalDoc(voice),
		NotificationPreferences: unmarshalDoc(notifications),
		PrivacySettings:         unmarshalDoc(privacy),
	}, nil
}
