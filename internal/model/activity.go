package model

import "time"

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

type Activity struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	TaskID      *int64    `json:"task_id"`
	Action      Action    `json:"action"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	// TaskTitle is joined from the tasks table for activity listings.
	// Nil when the related task has been deleted or was never set.
	TaskTitle *string `json:"task_title"`
}
