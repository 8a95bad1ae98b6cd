// ABOUTME: Task operations for the PostgreSQL backend
// ABOUTME: Pending listings sort by due date then severity rank; completion is one-way
package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/BigLebowskii/ai-voice-assistant/internal/models"
)

const pendingTaskOrder = `
	ORDER BY due_date ASC NULLS LAST,
	         CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 WHEN 'low' THEN 2 ELSE 3 END
`

// AddTask inserts a task and returns its generated id.
func (s *Store) AddTask(ctx context.Context, userID, title, description string, dueDate *time.Time, priority models.Priority, category *string) (int64, error) {
	db, err := s.acquire(ctx)
	if err != nil {
		return 0, err
	}

	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO tasks (user_id, title, description, due_date, priority, category)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, userID, title, description, dueDate, string(priority), category).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// PendingTasks lists incomplete tasks for userID, optionally restricted
// to an exact category match.
func (s *Store) PendingTasks(ctx context.Context, userID string, category *string) ([]models.Task, error) {
	db, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, title, description, due_date, priority, category
		FROM tasks
		WHERE user_id = $1 AND completed = FALSE
	`
	args := []any{userID}
	if category != nil {
		query += ` AND category = $2`
		args = append(args, *category)
	}
	query += pendingTaskOrder

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	tasks := []models.Task{}
	for rows.Next() {
		var (
			task     models.Task
			dueDate  sql.NullTime
			category sql.NullString
			priority string
		)
		if err := rows.Scan(&task.ID, &task.Title, &task.Description, &dueDate, &priority, &category); err != nil {
			return nil, err
		}
		if dueDate.Valid {
			due := dueDate.Time
			task.DueDate = &due
		}
		if category.Valid {
			cat := category.String
			task.Category = &cat
		}
		task.Priority = models.Priority(priority)
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// CompleteTask flips the task to completed and reports whether a row
// changed. The completed guard makes repeat calls report false.
func (s *Store) CompleteTask(ctx context.Context, taskID int64) (bool, error) {
	db, err := s.acquire(ctx)
	if err != nil {
		return false, err
	}

	result, err := db.ExecContext(ctx, `
		UPDATE tasks SET completed = TRUE WHERE id = $1 AND completed = FALSE
	`, taskID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
