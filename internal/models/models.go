// ABOUTME: Entity types persisted by the assistant backend
// ABOUTME: Documents are opaque JSON objects with no imposed schema
package models

import "time"

// Document is an arbitrary JSON-serializable key-value object. Preferences,
// conversation context, and the three settings categories all use it; the
// storage layer round-trips documents without inspecting them.
type Document map[string]any

// Priority classifies a task's urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank returns the severity rank used for sorting: high sorts before
// medium, medium before low. Unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// SettingCategory names one of the three independent settings documents.
type SettingCategory string

const (
	SettingVoice         SettingCategory = "voice_settings"
	SettingNotifications SettingCategory = "notification_preferences"
	SettingPrivacy       SettingCategory = "privacy_settings"
)

// Valid reports whether c is one of the three known categories.
func (c SettingCategory) Valid() bool {
	switch c {
	case SettingVoice, SettingNotifications, SettingPrivacy:
		return true
	}
	return false
}

// UserProfile is the per-user root record. Every other entity references
// its UserID by value.
type UserProfile struct {
	UserID          string    `json:"user_id"`
	Name            string    `json:"name"`
	Preferences     Document  `json:"preferences"`
	LastInteraction time.Time `json:"last_interaction"`
}

// Conversation is one immutable query/response exchange.
type Conversation struct {
	Timestamp time.Time `json:"timestamp"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Context   Document  `json:"context"`
}

// Task is a reminder or to-do item. Completed is monotonic: once true it
// never goes back to false.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    Priority   `json:"priority"`
	Category    *string    `json:"category"`
}

// Contact is an address-book entry. Only the name is required; contacts
// are immutable after creation.
type Contact struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	Relationship *string `json:"relationship"`
	Notes        *string `json:"notes"`
}

// UserSettings holds the three independent settings documents for a user.
// At most one row exists per user.
type UserSettings struct {
	UserID                  string   `json:"user_id"`
	VoiceSettings           Document `json:"voice_settings"`
	NotificationPreferences Document `json:"notification_preferences"`
	PrivacySettings         Document `json:"privacy_settings"`
}
