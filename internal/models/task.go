package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"task-planner.com/task-planner/internal/recurrence"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
	// StatusDeferred exists as a history action label only: deferring a task
	// reschedules it and writes it back as pending, so no task ever rests in
	// this status.
	StatusDeferred Status = "deferred"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusSkipped, StatusDeferred:
		return true
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Tags is an ordered list of labels stored as a JSON text column.
type Tags []string

func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		t = Tags{}
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *Tags) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case string:
		return json.Unmarshal([]byte(v), t)
	case []byte:
		return json.Unmarshal(v, t)
	}
	return errors.New("tags: unsupported column type")
}

type Task struct {
	ID                 string             `gorm:"primaryKey;size:36" json:"id"`
	Title              string             `gorm:"not null" json:"title"`
	Description        string             `json:"description,omitempty"`
	DueDate            time.Time          `gorm:"not null;index" json:"dueDate"`
	Priority           Priority           `gorm:"type:varchar(10);not null" json:"priority"`
	Status             Status             `gorm:"type:varchar(20);not null;index" json:"status"`
	IsRecurring        bool               `gorm:"not null;default:false" json:"isRecurring"`
	RecurrencePattern  recurrence.Pattern `gorm:"type:varchar(10);not null" json:"recurrencePattern"`
	RecurrenceInterval int                `gorm:"not null;default:1" json:"recurrenceInterval"`
	RecurrenceEndDate  *time.Time         `json:"recurrenceEndDate,omitempty"`
	ParentTaskID       string             `gorm:"size:36" json:"parentTaskId,omitempty"`
	Tags               Tags               `gorm:"type:text" json:"tags"`
	CompletedAt        *time.Time         `json:"completedAt,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}
