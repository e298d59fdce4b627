package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "task-planner.com/task-planner/internal/models"
)

const defaultHistoryLimit = 50

// HistoryRepository appends to and reads the audit log. There is no update
// and no delete on purpose: history entries are immutable and survive the
// deletion of the task they describe.
type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Append(ctx context.Context, entry *model.TaskHistory) error {
	entry.ID = uuid.NewString()
	entry.Timestamp = time.Now().UTC()

	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *HistoryRepository) List(ctx context.Context, q HistoryQuery) ([]model.TaskHistory, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	var entries []model.TaskHistory
	err := q.apply(r.db.WithContext(ctx)).
		Order("timestamp desc").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
