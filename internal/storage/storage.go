// ABOUTME: Backend contract for the assistant's relational persistence layer
// ABOUTME: Implemented by the sqlite and postgres packages
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/BigLebowskii/ai-voice-assistant/internal/models"
)

// ErrInvalidSettingCategory is returned when a settings update names a
// column outside the three-category enum.
var ErrInvalidSettingCategory = errors.New("invalid setting category")

// Backend is the synchronous record-level contract over the five entities.
// Absent records are reported as (nil, nil), not as errors. Each call
// completes or fails atomically; multi-statement operations run inside a
// single transaction.
type Backend interface {
	// GetUserProfile returns the profile for userID, or nil if none exists.
	GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error)

	// UpsertUserProfile creates the profile (with an empty settings row)
	// when absent, or touches last_interaction when present. A nil name or
	// preferences argument leaves the stored value untouched.
	UpsertUserProfile(ctx context.Context, userID string, name *string, preferences models.Document) (*models.UserProfile, error)

	// AppendConversation inserts one immutable exchange and advances the
	// profile's last_interaction to the same instant. Fails if no profile
	// exists for userID.
	AppendConversation(ctx context.Context, userID, query, response string, convContext models.Document) error

	// RecentConversations returns up to limit exchanges, most recent first.
	RecentConversations(ctx context.Context, userID string, limit int) ([]models.Conversation, error)

	// AddTask inserts a task and returns its generated id. A nil dueDate is
	// stored as NULL; callers are responsible for date parsing.
	AddTask(ctx context.Context, userID, title, description string, dueDate *time.Time, priority models.Priority, category *string) (int64, error)

	// PendingTasks lists incomplete tasks ordered by due date ascending
	// (undated tasks last), then by severity rank (high first). A non-nil
	// category restricts to exact matches.
	PendingTasks(ctx context.Context, userID string, category *string) ([]models.Task, error)

	// CompleteTask marks the task completed and reports whether a row
	// changed. Unknown or already-completed ids report false.
	CompleteTask(ctx context.Context, taskID int64) (bool, error)

	// AddContact inserts a contact and returns its generated id.
	AddContact(ctx context.Context, userID, name string, phone, email, relationship, notes *string) (int64, error)

	// Contacts lists a user's contacts. A non-nil nameFilter applies a
	// case-insensitive substring match on the name.
	Contacts(ctx context.Context, userID string, nameFilter *string) ([]models.Contact, error)

	// UpdateUserSettings overwrites one settings category, creating the
	// settings row first if missing. The other two categories are left
	// untouched. Returns ErrInvalidSettingCategory for unknown categories.
	UpdateUserSettings(ctx context.Context, userID string, category models.SettingCategory, settings models.Document) error

	// GetUserSettings returns the settings row for userID, or nil if none.
	GetUserSettings(ctx context.Context, userID string) (*models.UserSettings, error)

	Close() error
}
