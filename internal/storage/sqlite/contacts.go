// ABOUTME: Contact operations for the SQLite backend
// ABOUTME: Contacts are immutable after creation; name filtering is case-insensitive
package sqlite

import (
	"context"
	"database/sql"

	"github.com/BigLebowskii/ai-voice-assistant/internal/models"
)

// AddContact inserts a contact and returns its generated id.
func (s *Store) AddContact(ctx context.Context, userID, name string, phone, email, relationship, notes *string) (int64, error) {
	db, err := s.acquire(ctx)
	if err != nil {
		return 0, err
	}

	result, err := db.ExecContext(ctx, `
		INSERT INTO contacts (user_id, name, phone, email, relationship, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`, userID, name, phone, email, relationship, notes)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// Contacts lists a user's contacts, optionally filtered by a
// case-insensitive substring match on the name.
func (s *Store) Contacts(ctx context.Context, userID string, nameFilter *string) ([]models.Contact, error) {
	db, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, phone, email, relationship, notes
		FROM contacts
		WHERE user_id = ?
	`
	args := []any{userID}
	if nameFilter != nil {
		query += ` AND LOWER(name) LIKE '%' || LOWER(?) || '%'`
		args = append(args, *nameFilter)
	}
	query += ` ORDER BY id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	contacts := []models.Contact{}
	for rows.Next() {
		var (
			contact                           models.Contact
			phone, email, relationship, notes sql.NullString
		)
		if err := rows.Scan(&contact.ID, &contact.Name, &phone, &email, &relationship, &notes); err != nil {
			return nil, err
		}
		contact.Phone = nullableString(phone)
		contact.Email = nullableString(email)
		contact.Relationship = nullableString(relationship)
		contact.Notes = nullableString(notes)
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
