package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	apperrors "task-planner.com/task-planner/internal/errors"
	model "task-planner.com/task-planner/internal/models"
	"task-planner.com/task-planner/internal/recurrence"
	repository "task-planner.com/task-planner/internal/repositories"
)

// TaskService is the task lifecycle engine: it owns creation, partial
// updates, the complete/skip/defer actions with their recurrence
// rollforward, deletion, and the audit entry each of those appends.
type TaskService struct {
	logger  zerolog.Logger
	tasks   *repository.TaskRepository
	history *repository.HistoryRepository
}

func NewTaskService(
	logger zerolog.Logger,
	tasks *repository.TaskRepository,
	history *repository.HistoryRepository,
) *TaskService {
	return &TaskService{
		logger:  logger,
		tasks:   tasks,
		history: history,
	}
}

// CreateTaskInput carries the validated fields of a new task.
type CreateTaskInput struct {
	Title              string
	Description        string
	DueDate            time.Time
	Priority           model.Priority
	IsRecurring        bool
	RecurrencePattern  recurrence.Pattern
	RecurrenceInterval int
	RecurrenceEndDate  *time.Time
	ParentTaskID       string
	Tags               []string
}

func (s *TaskService) CreateTask(ctx context.Context, in CreateTaskInput) (*model.Task, error) {
	if in.Title == "" {
		return nil, apperrors.ErrTitleRequired
	}
	if in.DueDate.IsZero() {
		return nil, apperrors.ErrInvalidDueDate
	}

	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	pattern := in.RecurrencePattern
	if !in.IsRecurring || !pattern.Valid() {
		pattern = recurrence.PatternNone
	}

	interval := in.RecurrenceInterval
	if interval < 1 {
		interval = 1
	}

	task := &model.Task{
		Title:              in.Title,
		Description:        in.Description,
		DueDate:            in.DueDate,
		Priority:           priority,
		Status:             model.StatusPending,
		IsRecurring:        in.IsRecurring,
		RecurrencePattern:  pattern,
		RecurrenceInterval: interval,
		RecurrenceEndDate:  in.RecurrenceEndDate,
		ParentTaskID:       in.ParentTaskID,
		Tags:               model.Tags(in.Tags),
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Msg("failed to insert task")
		return nil, err
	}

	if err := s.appendHistory(ctx, task, model.ActionCreated, ""); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("task_id", task.ID).Msg("created task")
	return task, nil
}

// UpdateTaskPatch applies only the fields explicitly present in the request
// body; nil pointers are left untouched. RecurrenceEndDate has a dedicated
// clear flag because the wire format uses an empty string to drop the bound.
type UpdateTaskPatch struct {
	Title                  *string
	Description            *string
	DueDate                *time.Time
	Priority               *model.Priority
	Status                 *model.Status
	IsRecurring            *bool
	RecurrencePattern      *recurrence.Pattern
	RecurrenceInterval     *int
	RecurrenceEndDate      *time.Time
	ClearRecurrenceEndDate bool
	Tags                   *[]string
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, patch UpdateTaskPatch) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, apperrors.ErrTitleRequired
		}
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}
	if patch.Priority != nil && patch.Priority.Valid() {
		task.Priority = *patch.Priority
	}
	if patch.Status != nil && patch.Status.Valid() {
		task.Status = *patch.Status
	}
	if patch.IsRecurring != nil {
		task.IsRecurring = *patch.IsRecurring
	}
	if patch.RecurrencePattern != nil && patch.RecurrencePattern.Valid() {
		task.RecurrencePattern = *patch.RecurrencePattern
	}
	if patch.RecurrenceInterval != nil && *patch.RecurrenceInterval >= 1 {
		task.RecurrenceInterval = *patch.RecurrenceInterval
	}
	if patch.ClearRecurrenceEndDate {
		task.RecurrenceEndDate = nil
	} else if patch.RecurrenceEndDate != nil {
		task.RecurrenceEndDate = patch.RecurrenceEndDate
	}
	if patch.Tags != nil {
		task.Tags = model.Tags(*patch.Tags)
	}

	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("task_id", id).Msg("failed to update task")
		return nil, err
	}

	// Title snapshot comes from the post-update record.
	if err := s.appendHistory(ctx, task, model.ActionUpdated, ""); err != nil {
		return nil, err
	}

	return task, nil
}

// ApplyAction runs a lifecycle action against the task and, for recurring
// templates, rolls the same record forward to its next occurrence. Deferring
// never rolls forward: the "deferred" action reschedules the task and writes
// it back as pending, so the status only ever appears in history.
func (s *TaskService) ApplyAction(ctx context.Context, id string, action model.Action, newDueDate *time.Time, notes string) (*model.Task, error) {
	if action == "" {
		action = model.ActionCompleted
	}
	if !action.ValidLifecycle() {
		return nil, apperrors.ErrInvalidAction
	}

	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	originalDueDate := task.DueDate

	switch action {
	case model.ActionCompleted:
		task.Status = model.StatusCompleted
		task.CompletedAt = &now
	case model.ActionSkipped:
		task.Status = model.StatusSkipped
	case model.ActionDeferred:
		if newDueDate == nil {
			return nil, apperrors.ErrNewDueDateRequired
		}
		task.DueDate = *newDueDate
		task.Status = model.StatusPending
	}
	task.UpdatedAt = now

	if err := s.tasks.Update(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("task_id", id).Msg("failed to apply lifecycle action")
		return nil, err
	}

	if err := s.appendHistory(ctx, task, action, notes); err != nil {
		return nil, err
	}

	if task.IsRecurring && task.RecurrencePattern != recurrence.PatternNone && action != model.ActionDeferred {
		if err := s.rollForward(ctx, task, originalDueDate); err != nil {
			return nil, err
		}
	}

	return task, nil
}

// rollForward advances a recurring template in place. The same row keeps
// evolving; past occurrences exist only as history entries.
func (s *TaskService) rollForward(ctx context.Context, task *model.Task, originalDueDate time.Time) error {
	next := recurrence.NextDueDate(originalDueDate, task.RecurrencePattern, task.RecurrenceInterval)

	// Past the end of the series: the record rests in its final state.
	if task.RecurrenceEndDate != nil && next.After(*task.RecurrenceEndDate) {
		return nil
	}

	task.DueDate = next
	task.Status = model.StatusPending
	task.CompletedAt = nil
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("task_id", task.ID).Msg("failed to roll recurring task forward")
		return err
	}

	s.logger.Debug().
		Str("task_id", task.ID).
		Time("next_due", next).
		Msg("rolled recurring task forward")
	return nil
}

// DeleteTask removes the task row. Its history entries stay behind; the
// title snapshot on each entry keeps the trail readable afterwards.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("task_id", id).Msg("failed to delete task")
		return err
	}

	return s.appendHistory(ctx, task, model.ActionDeleted, "")
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	return s.tasks.FindByID(ctx, id)
}

func (s *TaskService) appendHistory(ctx context.Context, task *model.Task, action model.Action, notes string) error {
	entry := &model.TaskHistory{
		TaskID:    task.ID,
		TaskTitle: task.Title,
		Action:    action,
		Notes:     notes,
	}

	// The task write is not rolled back when this append fails; the
	// operation as a whole still reports failure.
	if err := s.history.Append(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("task_id", task.ID).Str("action", string(action)).
			Msg("failed to append history entry")
		return err
	}
	return nil
}
