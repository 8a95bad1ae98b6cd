// ABOUTME: Tests for the SQLite storage backend
// ABOUTME: Verifies profile upserts, history, task ordering, contacts, and settings isolation
package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BigLebowskii/ai-voice-assistant/internal/models"
	"github.com/BigLebowskii/ai-voice-assistant/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func strPtr(s string) *string { return &s }

func mustUpsert(t *testing.T, store *Store, userID string) {
	t.Helper()
	if _, err := store.UpsertUserProfile(context.Background(), userID, nil, nil); err != nil {
		t.Fatalf("UpsertUserProfile(%q) error = %v", userID, err)
	}
}

func TestGetUserProfileAbsent(t *testing.T) {
	store := newTestStore(t)

	profile, err := store.GetUserProfile(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetUserProfile() error = %v", err)
	}
	if profile != nil {
		t.Errorf("GetUserProfile() = %+v, want nil for absent user", profile)
	}
}

func TestUpsertUserProfileCreates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	profile, err := store.UpsertUserProfile(ctx, "u1", strPtr("Alice"), models.Document{"lang": "en"})
	if err != nil {
		t.Fatalf("UpsertUserProfile() error = %v", err)
	}
	if profile.Name != "Alice" {
		t.Errorf("Name = %q, want Alice", profile.Name)
	}
	if profile.Preferences["lang"] != "en" {
		t.Errorf("Preferences = %v, want lang=en", profile.Preferences)
	}
	if profile.LastInteraction.IsZero() {
		t.Error("LastInteraction should be set on creation")
	}

	// Creation pairs an empty settings row with the profile.
	settings, err := store.GetUserSettings(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUserSettings() error = %v", err)
	}
	if settings == nil {
		t.Fatal("GetUserSettings() = nil, want empty settings row after profile creation")
	}
	if len(settings.VoiceSettings) != 0 || len(settings.NotificationPreferences) != 0 || len(settings.PrivacySettings) != 0 {
		t.Errorf("new settings row should be empty, got %+v", settings)
	}
}

func TestUpsertUserProfileKeepsOmittedFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.UpsertUserProfile(ctx, "u1", strPtr("Alice"), models.Document{"lang": "en"})
	if err != nil {
		t.Fatalf("UpsertUserProfile() create error = %v", err)
	}

	second, err := store.UpsertUserProfile(ctx, "u1", nil, nil)
	if err != nil {
		t.Fatalf("UpsertUserProfile() update error = %v", err)
	}
	if second.Name != "Alice" {
		t.Errorf("Name = %q, want Alice preserved when omitted", second.Name)
	}
	if second.Preferences["lang"] != "en" {
		t.Errorf("Preferences = %v, want preserved when omitted", second.Preferences)
	}
	if second.LastInteraction.Before(first.LastInteraction) {
		t.Errorf("LastInteraction went backwards: %v -> %v", first.LastInteraction, second.LastInteraction)
	}

	third, err := store.UpsertUserProfile(ctx, "u1", strPtr("Alicia"), nil)
	if err != nil {
		t.Fatalf("UpsertUserProfile() rename error = %v", err)
	}
	if third.Name != "Alicia" {
		t.Errorf("Name = %q, want Alicia", third.Name)
	}
	if third.Preferences["lang"] != "en" {
		t.Errorf("Preferences = %v, want untouched by rename", third.Preferences)
	}
}

func TestAppendConversationTouchesProfile(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	mustUpsert(t, store, "u1")

	before, err := store.GetUserProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUserProfile() error = %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	if err := store.AppendConversation(ctx, "u1", "hello", "hi there", models.Document{"channel": "voice"}); err != nil {
		t.Fatalf("AppendConversation() error = %v", err)
	}

	after, err := store.GetUserProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUserProfile() error = %v", err)
	}
	if !after.LastInteraction.After(before.LastInteraction) {
		t.Errorf("LastInteraction not advanced: %v -> %v", before.LastInteraction, after.LastInteraction)
	}

	conversations, err := store.RecentConversations(ctx, "u1", 5)
	if err != nil {
		t.Fatalf("RecentConversations() error = %v", err)
	}
	if len(conversations) != 1 {
		t.Fatalf("RecentConversations() returned %d rows, want 1", len(conversations))
	}
	if conversations[0].Query != "hello" || conversations[0].Response != "hi there" {
		t.Errorf("conversation = %+v, want hello/hi there", conversations[0])
	}
	if conversations[0].Context["channel"] != "voice" {
		t.Errorf("Context = %v, want channel=voice", conversations[0].Context)
	}
}

func TestAppendConversationUnknownUser(t *testing.T) {
	store := newTestStore(t)

	err := store.AppendConversation(context.Background(), "ghost", "q", "r", nil)
	if err == nil {
		t.Error("AppendConversation() should fail for a user with no profile")
	}
}

func TestRecentConversationsOrderAndLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	mustUpsert(t, store, "u1")

	for _, q := range []string{"first", "second", "third"} {
		if err := store.AppendConversation(ctx, "u1", q, "ack", nil); err != nil {
			t.Fatalf("AppendConversation(%q) error = %v", q, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	conversations, err := store.RecentConversations(ctx, "u1", 2)
	if err != nil {
		t.Fatalf("RecentConversations() error = %v", err)
	}
	if len(conversations) != 2 {
		t.Fatalf("RecentConversations(limit=2) returned %d rows", len(conversations))
	}
	if conversations[0].Query != "third" || conversations[1].Query != "second" {
		t.Errorf("order = [%s, %s], want [third, second]", conversations[0].Query, conversations[1].Query)
	}
}

func TestPendingTasksOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	mustUpsert(t, store, "u1")

	soon := time.Now().Add(24 * time.Hour)
	later := time.Now().Add(72 * time.Hour)

	add := func(title string, due *time.Time, priority models.Priority) {
		t.Helper()
		if _, err := store.AddTask(ctx, "u1", title, "", due, priority, nil); err != nil {
			t.Fatalf("AddTask(%q) error = %v", title, err)
		}
	}

	add("undated-high", nil, models.PriorityHigh)
	add("later-medium", &later, models.PriorityMedium)
	add("soon-low", &soon, models.PriorityLow)
	add("soon-high", &soon, models.PriorityHigh)

	tasks, err := store.PendingTasks(ctx, "u1", nil)
	if err != nil {
		t.Fatalf("PendingTasks() error = %v", err)
	}

	want := []string{"soon-high", "soon-low", "later-medium", "undated-high"}
	if len(tasks) != len(want) {
		t.Fatalf("PendingTasks() returned %d tasks, want %d", len(tasks), len(want))
	}
	for i, title := range want {
		if tasks[i].Title != title {
			t.Errorf("tasks[%d].Title = %q, want %q", i, tasks[i].Title, title)
		}
	}
	if tasks[len(tasks)-1].DueDate != nil {
		t.Error("undated task should sort last with a nil DueDate")
	}
}

func TestPendingTasksCategoryFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	mustUpsert(t, store, "u1")

	if _, err := store.AddTask(ctx, "u1", "buy milk", "", nil, models.PriorityMedium, strPtr("errands")); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	if _, err := store.AddTask(ctx, "u1", "file taxes", "", nil, models.PriorityHigh, strPtr("finance")); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}

	tasks, err := store.PendingTasks(ctx, "u1", strPtr("errands"))
	if err != nil {
		t.Fatalf("PendingTasks() error = %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "buy milk" {
		t.Errorf("PendingTasks(errands) = %+v, want only buy milk", tasks)
	}
}

func TestCompleteTaskOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	mustUpsert(t, store, "u1")

	id, err := store.AddTask(ctx, "u1", "one-shot", "", nil, models.PriorityMedium, nil)
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}

	done, err := store.CompleteTask(ctx, id)
	if err != nil {
		t.Fatalf("CompleteTask() error = %v", err)
	}
	if !done {
		t.Error("CompleteTask() first call = false, want true")
	}

	again, err := store.CompleteTask(ctx, id)
	if err != nil {
		t.Fatalf("CompleteTask() second call error = %v", err)
	}
	if again {
		t.Error("CompleteTask() second call = true, want false")
	}

	unknown, err := store.CompleteTask(ctx, 99999)
	if err != nil {
		t.Fatalf("CompleteTask(unknown) error = %v", err)
	}
	if unknown {
		t.Error("CompleteTask(unknown) = true, want false")
	}

	tasks, err := store.PendingTasks(ctx, "u1", nil)
	if err != nil {
		t.Fatalf("PendingTasks() error = %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("completed task still pending: %+v", tasks)
	}
}

func TestContactsNameFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	mustUpsert(t, store, "u1")

	if _, err := store.AddContact(ctx, "u1", "Alice", strPtr("555-0100"), nil, strPtr("sister"), nil); err != nil {
		t.Fatalf("AddContact() error = %v", err)
	}
	if _, err := store.AddContact(ctx, "u1", "Bob", nil, strPtr("bob@example.com"), nil, nil); err != nil {
		t.Fatalf("AddContact() error = %v", err)
	}

	all, err := store.Contacts(ctx, "u1", nil)
	if err != nil {
		t.Fatalf("Contacts() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Contacts() returned %d rows, want 2", len(all))
	}

	matched, err := store.Contacts(ctx, "u1", strPtr("ali"))
	if err != nil {
		t.Fatalf("Contacts(ali) error = %v", err)
	}
	if len(matched) != 1 || matched[0].Name != "Alice" {
		t.Errorf("Contacts(ali) = %+v, want only Alice", matched)
	}
	if matched[0].Phone == nil || *matched[0].Phone != "555-0100" {
		t.Errorf("Phone = %v, want 555-0100", matched[0].Phone)
	}
	if matched[0].Email != nil {
		t.Errorf("Email = %v, want nil when omitted", matched[0].Email)
	}
}

func TestUpdateUserSettingsIsolation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	mustUpsert(t, store, "u1")

	voice := models.Document{"speed": 1.5, "voice": "nova"}
	if err := store.UpdateUserSettings(ctx, "u1", models.SettingVoice, voice); err != nil {
		t.Fatalf("UpdateUserSettings(voice) error = %v", err)
	}
	if err := store.UpdateUserSettings(ctx, "u1", models.SettingNotifications, models.Document{"email": true}); err != nil {
		t.Fatalf("UpdateUserSettings(notifications) error = %v", err)
	}

	settings, err := store.GetUserSettings(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUserSettings() error = %v", err)
	}
	if settings.VoiceSettings["speed"] != 1.5 || settings.VoiceSettings["voice"] != "nova" {
		t.Errorf("VoiceSettings = %v, want untouched by notifications update", settings.VoiceSettings)
	}
	if settings.NotificationPreferences["email"] != true {
		t.Errorf("NotificationPreferences = %v, want email=true", settings.NotificationPreferences)
	}
	if len(settings.PrivacySettings) != 0 {
		t.Errorf("PrivacySettings = %v, want empty", settings.PrivacySettings)
	}
}

func TestUpdateUserSettingsInvalidCategory(t *testing.T) {
	store := newTestStore(t)

	err := store.UpdateUserSettings(context.Background(), "u1", "audio_settings", models.Document{})
	if !errors.Is(err, storage.ErrInvalidSettingCategory) {
		t.Errorf("UpdateUserSettings(audio_settings) error = %v, want ErrInvalidSettingCategory", err)
	}
}

func TestUpdateUserSettingsRecreatesRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	mustUpsert(t, store, "solo")

	// Drop the paired settings row to force the lazy-create path.
	db, err := store.acquire(ctx)
	if err != nil {
		t.Fatalf("acquire() error = %v", err)
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM user_settings WHERE user_id = ?`, "solo"); err != nil {
		t.Fatalf("delete settings row: %v", err)
	}

	if err := store.UpdateUserSettings(ctx, "solo", models.SettingPrivacy, models.Document{"share": false}); err != nil {
		t.Fatalf("UpdateUserSettings() error = %v", err)
	}

	settings, err := store.GetUserSettings(ctx, "solo")
	if err != nil {
		t.Fatalf("GetUserSettings() error = %v", err)
	}
	if settings == nil {
		t.Fatal("GetUserSettings() = nil, want lazily created row")
	}
	if settings.PrivacySettings["share"] != false {
		t.Errorf("PrivacySettings = %v, want share=false", settings.PrivacySettings)
	}
}

func TestGetUserSettingsAbsent(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.GetUserSettings(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetUserSettings() error = %v", err)
	}
	if settings != nil {
		t.Errorf("GetUserSettings() = %+v, want nil for absent user", settings)
	}
}
