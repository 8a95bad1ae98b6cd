// ABOUTME: Handler implementations for every callable operation
// ABOUTME: Normalizes arguments, applies defaults, and contains failures per operation
package functions

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/BigLebowskii/ai-voice-assistant/internal/models"
)

const defaultConversationLimit = 5

// Summary is the aggregate document returned by generate_summary.
type Summary struct {
	UserName           string                `json:"user_name"`
	LastInteraction    *time.Time            `json:"last_interaction"`
	PendingTaskCount   int                   `json:"pending_task_count"`
	UpcomingTasks      []models.Task         `json:"upcoming_tasks"`
	RecentInteractions []models.Conversation `json:"recent_interactions"`
}

// catalog is the full operation table. Order matters only for stable
// enumeration by tool surfaces.
func (r *Registry) catalog() []operation {
	return []operation{
		{
			Spec: Spec{
				Name:        "get_user_profile",
				Description: "Get a user's profile with name, preferences, and last interaction time.",
				Parameters: Schema{
					Properties: map[string]any{
						"user_id": stringProp("Unique identifier for the user"),
					},
					Required: []string{"user_id"},
				},
			},
			handler: r.getUserProfile,
		},
		{
			Spec: Spec{
				Name:        "create_or_update_user",
				Description: "Create a user profile or update an existing one. Omitted fields keep their current values.",
				Parameters: Schema{
					Properties: map[string]any{
						"user_id":     stringProp("Unique identifier for the user"),
						"name":        stringProp("User's display name"),
						"preferences": objectProp("Arbitrary preference key-value pairs"),
					},
					Required: []string{"user_id"},
				},
			},
			handler: r.createOrUpdateUser,
		},
		{
			Spec: Spec{
				Name:        "save_conversation",
				Description: "Save one query/response exchange to the user's history. Returns true on success.",
				Parameters: Schema{
					Properties: map[string]any{
						"user_id":  stringProp("Unique identifier for the user"),
						"query":    stringProp("What the user said"),
						"response": stringProp("What the assistant answered"),
						"context":  objectProp("Optional context for the exchange"),
					},
					Required: []string{"user_id", "query", "response"},
				},
			},
			handler: r.saveConversation,
		},
		{
			Spec: Spec{
				Name:        "get_recent_conversations",
				Description: "Get the user's most recent conversations, newest first (default 5).",
				Parameters: Schema{
					Properties: map[string]any{
						"user_id": stringProp("Unique identifier for the user"),
						"limit":   map[string]any{"type": "integer", "description": "Maximum number of conversations to return", "default": defaultConversationLimit},
					},
					Required: []string{"user_id"},
				},
			},
			handler: r.getRecentConversations,
		},
		{
			Spec: Spec{
				Name:        "add_task",
				Description: "Add a task or reminder for the user. Returns the new task id.",
				Parameters: Schema{
					Properties: map[string]any{
						"user_id":     stringProp("Unique identifier for the user"),
						"title":       stringProp("Short task title"),
						"description": stringProp("Longer task description"),
						"due_date":    stringProp("Due date in ISO-8601 form, e.g. 2026-09-15 or 2026-09-15T14:30:00Z"),
						"priority":    map[string]any{"type": "string", "description": "Task priority", "enum": []string{"low", "medium", "high"}, "default": "medium"},
						"category":    stringProp("Optional category label"),
					},
					Required: []string{"user_id", "title"},
				},
			},
			handler: r.addTask,
		},
		{
			Spec: Spec{
				Name:        "get_pending_tasks",
				Description: "List the user's incomplete tasks, soonest due first, optionally filtered by category.",
				Parameters: Schema{
					Properties: map[string]any{
						"user_id":  stringProp("Unique identifier for the user"),
						"category": stringProp("Only return tasks in this category"),
					},
					Required: []string{"user_id"},
				},
			},
			handler: r.getPendingTasks,
		},
		{
			Spec: Spec{
				Name:        "complete_task",
				Description: "Mark a task completed. Returns true if the task changed, false if unknown or already done.",
				Parameters: Schema{
					Properties: map[string]any{
						"task_id": map[string]any{"type": "integer", "description": "Id of the task to complete"},
					},
					Required: []string{"task_id"},
				},
			},
			handler: r.completeTask,
		},
		{
			Spec: Spec{
				Name:        "add_contact",
				Description: "Add a contact for the user. Only the name is required. Returns the new contact id.",
				Parameters: Schema{
					Properties: map[string]any{
						"user_id":      stringProp("Unique identifier for the user"),
						"name":         stringProp("Contact's name"),
						"phone":        stringProp("Phone number"),
						"email":        stringProp("Email address"),
						"relationship": stringProp("Relationship to the user, e.g. sister, coworker"),
						"notes":        stringProp("Free-form notes"),
					},
					Required: []string{"user_id", "name"},
				},
			},
			handler: r.addContact,
		},
		{
			Spec: Spec{
				Name:        "get_contacts",
				Description: "List the user's contacts, optionally filtered by a case-insensitive name substring.",
				Parameters: Schema{
					Properties: map[string]any{
						"user_id":     stringProp("Unique identifier for the user"),
						"name_filter": stringProp("Substring to match against contact names"),
					},
					Required: []string{"user_id"},
				},
			},
			handler: r.getContacts,
		},
		{
			Spec: Spec{
				Name:        "update_user_settings",
				Description: "Overwrite one settings category (voice_settings, notification_preferences, or privacy_settings). Returns true on success.",
				Parameters: Schema{
					Properties: map[string]any{
						"user_id":      stringProp("Unique identifier for the user"),
						"setting_type": map[string]any{"type": "string", "description": "Which settings document to replace", "enum": []string{"voice_settings", "notification_preferences", "privacy_settings"}},
						"settings":     objectProp("The new settings document"),
					},
					Required: []string{"user_id", "setting_type", "settings"},
				},
			},
			handler: r.updateUserSettings,
		},
		{
			Spec: Spec{
				Name:        "get_user_settings",
				Description: "Get all three settings documents for the user.",
				Parameters: Schema{
					Properties: map[string]any{
						"user_id": stringProp("Unique identifier for the user"),
					},
					Required: []string{"user_id"},
				},
			},
			handler: r.getUserSettings,
		},
		{
			Spec: Spec{
				Name:        "generate_summary",
				Description: "Summarize the user's profile, upcoming tasks, and recent conversations in one document.",
				Parameters: Schema{
					Properties: map[string]any{
						"user_id": stringProp("Unique identifier for the user"),
					},
					Required: []string{"user_id"},
				},
			},
			handler: r.generateSummary,
		},
	}
}

func (r *Registry) getUserProfile(ctx context.Context, raw json.RawMessage) (any, error) {
	var args struct {
		UserID string `json:"user_id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.UserID == "" {
		return nil, errMissing("user_id")
	}

	profile, err := r.store.GetUserProfile(ctx, args.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return ErrorPayload{Error: "User not found"}, nil
	}
	return profile, nil
}

func (r *Registry) createOrUpdateUser(ctx context.Context, raw json.RawMessage) (any, error) {
	var args struct {
		UserID      string          `json:"user_id"`
		Name        *string         `json:"name"`
		Preferences models.Document `json:"preferences"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.UserID == "" {
		return nil, errMissing("user_id")
	}

	return r.store.UpsertUserProfile(ctx, args.UserID, args.Name, args.Preferences)
}

// saveConversation returns a bare success boolean. Failures of any kind
// are logged and reported as false, never raised to the driver.
func (r *Registry) saveConversation(ctx context.Context, raw json.RawMessage) (any, error) {
	var args struct {
		UserID   string          `json:"user_id"`
		Query    string          `json:"query"`
		Response string          `json:"response"`
		Context  models.Document `json:"context"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		log.Printf("save_conversation: %v", err)
		return false, nil
	}
	if err := r.store.AppendConversation(ctx, args.UserID, args.Query, args.Response, args.Context); err != nil {
		log.Printf("save_conversation: failed for user %q: %v", args.UserID, err)
		return false, nil
	}
	return true, nil
}

func (r *Registry) getRecentConversations(ctx context.Context, raw json.RawMessage) (any, error) {
	var args struct {
		UserID string `json:"user_id"`
		Limit  *int   `json:"limit"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.UserID == "" {
		return nil, errMissing("user_id")
	}

	limit := defaultConversationLimit
	if args.Limit != nil && *args.Limit > 0 {
		limit = *args.Limit
	}
	return r.store.RecentConversations(ctx, args.UserID, limit)
}

func (r *Registry) addTask(ctx context.Context, raw json.RawMessage) (any, error) {
	var args struct {
		UserID      string  `json:"user_id"`
		Title       string  `json:"title"`
		Description string  `json:"description"`
		DueDate     *string `json:"due_date"`
		Priority    *string `json:"priority"`
		Category    *string `json:"category"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.UserID == "" {
		return nil, errMissing("user_id")
	}
	if args.Title == "" {
		return nil, errMissing("title")
	}

	priority := models.PriorityMedium
	if args.Priority != nil {
		priority = models.Priority(*args.Priority)
		if !priority.Valid() {
			return nil, fmt.Errorf("invalid priority %q: must be low, medium, or high", *args.Priority)
		}
	}

	// A due date that fails to parse is dropped rather than failing the
	// whole operation; the task still gets created.
	var dueDate *time.Time
	if args.DueDate != nil && *args.DueDate != "" {
		parsed, err := parseDueDate(*args.DueDate)
		if err != nil {
			log.Printf("add_task: invalid due date %q, storing task without one: %v", *args.DueDate, err)
		} else {
			dueDate = &parsed
		}
	}

	return r.store.AddTask(ctx, args.UserID, args.Title, args.Description, dueDate, priority, args.Category)
}

func (r *Registry) getPendingTasks(ctx context.Context, raw json.RawMessage) (any, error) {
	var args struct {
		UserID   string  `json:"user_id"`
		Category *string `json:"category"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.UserID == "" {
		return nil, errMissing("user_id")
	}
	return r.store.PendingTasks(ctx, args.UserID, args.Category)
}

func (r *Registry) completeTask(ctx context.Context, raw json.RawMessage) (any, error) {
	var args struct {
		TaskID int64 `json:"task_id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.TaskID <= 0 {
		return nil, errMissing("task_id")
	}
	return r.store.CompleteTask(ctx, args.TaskID)
}

func (r *Registry) addContact(ctx context.Context, raw json.RawMessage) (any, error) {
	var args struct {
		UserID       string  `json:"user_id"`
		Name         string  `json:"name"`
		Phone        *string `json:"phone"`
		Email        *string `json:"email"`
		Relationship *string `json:"relationship"`
		Notes        *string `json:"notes"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.UserID == "" {
		return nil, errMissing("user_id")
	}
	if args.Name == "" {
		return nil, errMissing("name")
	}
	return r.store.AddContact(ctx, args.UserID, args.Name, args.Phone, args.Email, args.Relationship, args.Notes)
}

func (r *Registry) getContacts(ctx context.Context, raw json.RawMessage) (any, error) {
	var args struct {
		UserID     string  `json:"user_id"`
		NameFilter *string `json:"name_filter"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.UserID == "" {
		return nil, errMissing("user_id")
	}
	return r.store.Contacts(ctx, args.UserID, args.NameFilter)
}

// updateUserSettings returns a bare success boolean. Backend failures and
// invalid categories are logged and reported as false, never raised.
func (r *Registry) updateUserSettings(ctx context.Context, raw json.RawMessage) (any, error) {
	var args struct {
		UserID      string          `json:"user_id"`
		SettingType string          `json:"setting_type"`
		Settings    models.Document `json:"settings"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		log.Printf("update_user_settings: %v", err)
		return false, nil
	}
	if err := r.store.UpdateUserSettings(ctx, args.UserID, models.SettingCategory(args.SettingType), args.Settings); err != nil {
		log.Printf("update_user_settings: failed for user %q: %v", args.UserID, err)
		return false, nil
	}
	return true, nil
}

func (r *Registry) getUserSettings(ctx context.Context, raw json.RawMessage) (any, error) {
	var args struct {
		UserID string `json:"user_id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.UserID == "" {
		return nil, errMissing("user_id")
	}

	settings, err := r.store.GetUserSettings(ctx, args.UserID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return ErrorPayload{Error: "Settings not found"}, nil
	}
	return settings, nil
}

// generateSummary never raises: every internal failure is converted into
// an error payload the driver can phrase as a sentence.
func (r *Registry) generateSummary(ctx context.Context, raw json.RawMessage) (any, error) {
	var args struct {
		UserID string `json:"user_id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return ErrorPayload{Error: fmt.Sprintf("Failed to generate summary: %v", err)}, nil
	}

	profile, err := r.store.GetUserProfile(ctx, args.UserID)
	if err != nil {
		return summaryError(err), nil
	}
	pending, err := r.store.PendingTasks(ctx, args.UserID, nil)
	if err != nil {
		return summaryError(err), nil
	}
	recent, err := r.store.RecentConversations(ctx, args.UserID, 3)
	if err != nil {
		return summaryError(err), nil
	}

	summary := Summary{
		UserName:           "User",
		PendingTaskCount:   len(pending),
		UpcomingTasks:      []models.Task{},
		RecentInteractions: recent,
	}
	if profile != nil {
		summary.UserName = profile.Name
		last := profile.LastInteraction
		summary.LastInteraction = &last
	}
	for _, task := range pending {
		if task.DueDate == nil {
			continue
		}
		summary.UpcomingTasks = append(summary.UpcomingTasks, task)
		if len(summary.UpcomingTasks) == 3 {
			break
		}
	}
	return summary, nil
}

func summaryError(err error) ErrorPayload {
	log.Printf("generate_summary: %v", err)
	return ErrorPayload{Error: fmt.Sprintf("Failed to generate summary: %v", err)}
}

// parseDueDate accepts the ISO-8601 layouts the model is likely to emit.
func parseDueDate(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
