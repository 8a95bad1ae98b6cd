// ABOUTME: PostgreSQL schema for the five assistant entities
// ABOUTME: Applied on every open; all statements are idempotent
package postgres

const schema = `
CREATE TABLE IF NOT EXISTS user_profiles (
    user_id VARCHAR(255) PRIMARY KEY,
    name VARCHAR(255),
    preferences JSONB,
    last_interaction TIMESTAMP
);

CREATE TABLE IF NOT EXISTS conversations (
    id SERIAL PRIMARY KEY,
    user_id VARCHAR(255) NOT NULL REFERENCES user_profiles(user_id),
    timestamp TIMESTAMP,
    query TEXT,
    response TEXT,
    context JSONB
);

CREATE TABLE IF NOT EXISTS tasks (
    id SERIAL PRIMARY KEY,
    user_id VARCHAR(255) NOT NULL REFERENCES user_profiles(user_id),
    title VARCHAR(255),
    description TEXT,
    due_date TIMESTAMP,
    completed BOOLEAN DEFAULT FALSE,
    priority VARCHAR(50),
    category VARCHAR(100),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS user_settings (
    user_id VARCHAR(255) PRIMARY KEY REFERENCES user_profiles(user_id),
    voice_settings JSONB,
    notification_preferences JSONB,
    privacy_settings JSONB
);

CREATE TABLE IF NOT EXISTS contacts (
    id SERIAL PRIMARY KEY,
    user_id VARCHAR(255) NOT NULL REFERENCES user_profiles(user_id),
    name VARCHAR(255) NOT NULL,
    phone VARCHAR(100),
    email VARCHAR(255),
    relationship VARCHAR(100),
    notes TEXT
);

CREATE INDEX IF NOT EXISTS idx_conversations_user ON conversations(user_id, timestamp);
CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id, completed);
CREATE INDEX IF NOT EXISTS idx_contacts_user ON contacts(user_id);
`
