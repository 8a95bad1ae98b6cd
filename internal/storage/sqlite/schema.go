// ABOUTME: SQLite schema for the five assistant entities
// ABOUTME: Applied on every open; all statements are idempotent
package sqlite

// schema mirrors the PostgreSQL deployment schema with SQLite column
// types: JSON documents live in TEXT columns, surrogate keys use
// AUTOINCREMENT rowids.
const schema = `
CREATE TABLE IF NOT EXISTS user_profiles (
    user_id TEXT PRIMARY KEY,
    name TEXT,
    preferences TEXT,
    last_interaction TIMESTAMP
);

CREATE TABLE IF NOT EXISTS conversations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT NOT NULL REFERENCES user_profiles(user_id),
    timestamp TIMESTAMP,
    query TEXT,
    response TEXT,
    context TEXT
);

CREATE TABLE IF NOT EXISTS tasks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT NOT NULL REFERENCES user_profiles(user_id),
    title TEXT,
    description TEXT,
    due_date TIMESTAMP,
    completed BOOLEAN DEFAULT 0,
    priority TEXT,
    category TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS user_settings (
    user_id TEXT PRIMARY KEY REFERENCES user_profiles(user_id),
    voice_settings TEXT,
    notification_preferences TEXT,
    privacy_settings TEXT
);

CREATE TABLE IF NOT EXISTS contacts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT NOT NULL REFERENCES user_profiles(user_id),
    name TEXT NOT NULL,
    phone TEXT,
    email TEXT,
    relationship TEXT,
    notes TEXT
);

CREATE INDEX IF NOT EXISTS idx_conversations_user ON conversations(user_id, timestamp);
CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id, completed);
CREATE INDEX IF NOT EXISTS idx_contacts_user ON contacts(user_id);
`
