package repository

import (
	"time"

	"gorm.io/gorm"

	model "task-planner.com/task-planner/internal/models"
)

// TaskQuery is an explicit, composable query spec over the tasks collection.
// Every field is optional; the zero value selects everything. The view layer
// translates named views into due-date predicates before reaching here, so
// the repository never needs to know what "backlog" means.
type TaskQuery struct {
	DueBefore     *time.Time // exclusive upper bound on due date
	DueFrom       *time.Time // inclusive lower bound on due date
	DueNotAfter   *time.Time // inclusive upper bound on due date
	Status        model.Status
	CompletedFrom *time.Time // inclusive lower bound on completion time
	CompletedTo   *time.Time // inclusive upper bound on completion time
}

func (q TaskQuery) apply(db *gorm.DB) *gorm.DB {
	if q.DueBefore != nil {
		db = db.Where("due_date < ?", *q.DueBefore)
	}
	if q.DueFrom != nil {
		db = db.Where("due_date >= ?", *q.DueFrom)
	}
	if q.DueNotAfter != nil {
		db = db.Where("due_date <= ?", *q.DueNotAfter)
	}
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.CompletedFrom != nil {
		db = db.Where("completed_at >= ?", *q.CompletedFrom)
	}
	if q.CompletedTo != nil {
		db = db.Where("completed_at <= ?", *q.CompletedTo)
	}
	return db
}

// HistoryQuery filters the audit log tail.
type HistoryQuery struct {
	From   *time.Time
	To     *time.Time
	Action model.Action
	Limit  int // entries returned, newest first; defaults to 50
}

func (q HistoryQuery) apply(db *gorm.DB) *gorm.DB {
	if q.From != nil {
		db = db.Where("timestamp >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("timestamp <= ?", *q.To)
	}
	if q.Action != "" {
		db = db.Where("action = ?", q.Action)
	}
	return db
}
