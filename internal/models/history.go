package model

import "time"

// Action labels a task lifecycle event in the audit log. The lifecycle
// endpoint accepts only completed, skipped and deferred; the others are
// written by the corresponding CRUD operations.
type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionCompleted Action = "completed"
	ActionSkipped   Action = "skipped"
	ActionDeferred  Action = "deferred"
	ActionDeleted   Action = "deleted"
)

func (a Action) Valid() bool {
	switch a {
	case ActionCreated, ActionUpdated, ActionCompleted, ActionSkipped, ActionDeferred, ActionDeleted:
		return true
	}
	return false
}

// ValidLifecycle reports whether the action may be requested through the
// lifecycle endpoint.
func (a Action) ValidLifecycle() bool {
	return a == ActionCompleted || a == ActionSkipped || a == ActionDeferred
}

// TaskHistory is an append-only audit entry. Entries are never mutated or
// deleted and deliberately snapshot the task title, so the trail stays
// meaningful after the task itself is gone.
type TaskHistory struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	TaskID    string    `gorm:"size:36;not null;index" json:"taskId"`
	TaskTitle string    `gorm:"not null" json:"taskTitle"`
	Action    Action    `gorm:"type:varchar(20);not null;index" json:"action"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}
