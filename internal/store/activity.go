package store

import (
	"database/sql"
	"fmt"

	"taskflow/internal/model"
)

const defaultActivityLimit = 50

// ActivityStore appends and reads the audit trail. Entries are never
// updated or deleted.
type ActivityStore struct {
	db *sql.DB
}

func NewActivityStore(db *sql.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

// Record appends one entry. taskID may be nil, e.g. for deletions where
// no task row remains to reference.
func (s *ActivityStore) Record(userID int64, taskID *int64, action model.Action, description string) error {
	var tID sql.NullInt64
	if taskID != nil {
		tID = sql.NullInt64{Int64: *taskID, Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO activity_log (user_id, task_id, action, description) VALUES (?, ?, ?, ?)`,
		userID, tID, string(action), description,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListByUser returns the user's newest entries first, joined with the
// related task title where the task still exists.
func (s *ActivityStore) ListByUser(userID int64, limit int) ([]model.Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}

	rows, err := s.db.Query(`
		SELECT a.id, a.user_id, a.task_id, a.action, a.description, a.created_at, t.title
		FROM activity_log a
		LEFT JOIN tasks t ON a.task_id = t.id
		WHERE a.user_id = ?
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var activities []model.Activity
	for rows.Next() {
		var a model.Activity
		var taskID sql.NullInt64
		var title sql.NullString
		if err := rows.Scan(&a.ID, &a.UserID, &taskID, &a.Action, &a.Description, &a.CreatedAt, &title); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		if taskID.Valid {
			a.TaskID = &taskID.Int64
		}
		if title.Valid {
			a.TaskTitle = &title.String
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
