package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "task-planner.com/task-planner/internal/errors"
	model "task-planner.com/task-planner/internal/models"
)

// Tasks are listed due date first, earliest due wins; ties go to the higher
// priority.
const taskOrdering = "due_date asc, CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END asc"

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create assigns the task its identity and server timestamps before insert.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	now := time.Now().UTC()
	task.ID = uuid.NewString()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Tags == nil {
		task.Tags = model.Tags{}
	}

	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context, q TaskQuery) ([]model.Task, error) {
	var tasks []model.Task
	err := q.apply(r.db.WithContext(ctx)).
		Order(taskOrdering).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) Count(ctx context.Context, q TaskQuery) (int64, error) {
	var count int64
	err := q.apply(r.db.WithContext(ctx).Model(&model.Task{})).Count(&count).Error
	return count, err
}

// Update writes back every mutable field of the task. Last write wins: there
// is no version column, concurrent lifecycle actions on the same id are an
// accepted race for a single-user tool.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"title":               task.Title,
			"description":         task.Description,
			"due_date":            task.DueDate,
			"priority":            task.Priority,
			"status":              task.Status,
			"is_recurring":        task.IsRecurring,
			"recurrence_pattern":  task.RecurrencePattern,
			"recurrence_interval": task.RecurrenceInterval,
			"recurrence_end_date": task.RecurrenceEndDate,
			"parent_task_id":      task.ParentTaskID,
			"tags":                task.Tags,
			"completed_at":        task.CompletedAt,
			"updated_at":          task.UpdatedAt,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}
