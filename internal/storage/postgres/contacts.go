// ABOUTME: Contact operations for the PostgreSQL backend
// ABOUTME: Contacts are immutable after creation; name filtering uses ILIKE
package postgres

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

	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO contacts (user_id, name, phone, email, relationship, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, userID, name, phone, email, relationship, notes).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
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
		WHERE user_id = $1
	`
	args := []any{userID}
	if nameFilter != nil {
		query += ` AND name ILIKE '%' || $2 || '%'`
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
