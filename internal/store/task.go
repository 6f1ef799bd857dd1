package store

import (
	"database/sql"
	"fmt"

	"taskflow/internal/model"
)

// TaskStore persists task records. Every query is scoped to the owning
// user id; a task owned by someone else is indistinguishable from a
// missing one.
type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	var dueDate sql.NullString
	err := scanner.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description,
		&t.Priority, &t.Status, &dueDate, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dueDate.Valid {
		t.DueDate = &dueDate.String
	}
	return &t, nil
}

const taskCols = `id, user_id, title, description, priority, status, due_date, created_at`

// ListByUser returns the user's tasks, most recently created first.
func (s *TaskStore) ListByUser(userID int64) ([]model.Task, error) {
	rows, err := s.db.Query(
		`SELECT `+taskCols+` FROM tasks WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// Create inserts a task and returns the stored row, including the
// generated id and timestamp.
func (s *TaskStore) Create(userID int64, title, description string, priority model.Priority, status model.Status, dueDate *string) (*model.Task, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}

	var due sql.NullString
	if dueDate != nil {
		due = sql.NullString{String: *dueDate, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO tasks (user_id, title, description, priority, status, due_date) VALUES (?, ?, ?, ?, ?, ?)`,
		userID, title, description, string(priority), string(status), due,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByIDForUser(userID, id)
}

// GetByIDForUser fetches a single task scoped to its owner. Missing and
// foreign rows both report ErrNotFound.
func (s *TaskStore) GetByIDForUser(userID, id int64) (*model.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskCols+` FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// Update writes the full field set for an owned task and returns the row
// read back after the write. Merging partial input onto the current row
// is the caller's job.
func (s *TaskStore) Update(userID, id int64, title, description string, priority model.Priority, status model.Status, dueDate *string) (*model.Task, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}

	var due sql.NullString
	if dueDate != nil {
		due = sql.NullString{String: *dueDate, Valid: true}
	}

	result, err := s.db.Exec(
		`UPDATE tasks SET title = ?, description = ?, priority = ?, status = ?, due_date = ? WHERE id = ? AND user_id = ?`,
		title, description, string(priority), string(status), due, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.GetByIDForUser(userID, id)
}

// Delete hard-deletes an owned task.
func (s *TaskStore) Delete(userID, id int64) error {
	result, err := s.db.Exec(`DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
