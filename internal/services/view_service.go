package services

import (
	"context"
	"time"

	apperrors "task-planner.com/task-planner/internal/errors"
	model "task-planner.com/task-planner/internal/models"
	"task-planner.com/task-planner/internal/recurrence"
	repository "task-planner.com/task-planner/internal/repositories"
)

// Named task views. Each maps to a due-date predicate over pending tasks;
// anything else falls through to an unfiltered listing.
const (
	ViewToday   = "today"
	ViewWeek    = "week"
	ViewBacklog = "backlog"
)

// ViewService is the query side: named views, the dashboard counters, and
// the audit log tail.
type ViewService struct {
	tasks   *repository.TaskRepository
	history *repository.HistoryRepository
}

func NewViewService(
	tasks *repository.TaskRepository,
	history *repository.HistoryRepository,
) *ViewService {
	return &ViewService{
		tasks:   tasks,
		history: history,
	}
}

// ListTasksInput selects either a named view or an explicit due-date range.
// An explicit status always overrides the view's implicit pending filter.
type ListTasksInput struct {
	View      string
	StartDate *time.Time
	EndDate   *time.Time
	Status    model.Status
}

func (s *ViewService) ListTasks(ctx context.Context, in ListTasksInput) ([]model.Task, error) {
	q := taskQueryFor(in, time.Now())
	return s.tasks.List(ctx, q)
}

func taskQueryFor(in ListTasksInput, now time.Time) repository.TaskQuery {
	var q repository.TaskQuery

	switch {
	case in.View == ViewToday:
		end := recurrence.EndOfDay(now)
		q.DueNotAfter = &end
		q.Status = model.StatusPending
	case in.View == ViewWeek:
		start := recurrence.StartOfDay(now)
		end := recurrence.EndOfWeek(now)
		q.DueFrom = &start
		q.DueNotAfter = &end
		q.Status = model.StatusPending
	case in.View == ViewBacklog:
		start := recurrence.StartOfDay(now)
		q.DueBefore = &start
		q.Status = model.StatusPending
	case in.StartDate != nil && in.EndDate != nil:
		q.DueFrom = in.StartDate
		q.DueNotAfter = in.EndDate
	}

	if in.Status != "" {
		q.Status = in.Status
	}
	return q
}

// Stats returns the four dashboard counters, all measured against the same
// day and week boundaries as the views. The counts are independent reads;
// nothing promises they describe a single instant.
func (s *ViewService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	now := time.Now()
	startOfDay := recurrence.StartOfDay(now)
	endOfDay := recurrence.EndOfDay(now)
	endOfWeek := recurrence.EndOfWeek(now)

	todayCount, err := s.tasks.Count(ctx, repository.TaskQuery{
		DueNotAfter: &endOfDay,
		Status:      model.StatusPending,
	})
	if err != nil {
		return nil, err
	}

	weekCount, err := s.tasks.Count(ctx, repository.TaskQuery{
		DueFrom:     &startOfDay,
		DueNotAfter: &endOfWeek,
		Status:      model.StatusPending,
	})
	if err != nil {
		return nil, err
	}

	backlogCount, err := s.tasks.Count(ctx, repository.TaskQuery{
		DueBefore: &startOfDay,
		Status:    model.StatusPending,
	})
	if err != nil {
		return nil, err
	}

	completedToday, err := s.tasks.Count(ctx, repository.TaskQuery{
		Status:        model.StatusCompleted,
		CompletedFrom: &startOfDay,
		CompletedTo:   &endOfDay,
	})
	if err != nil {
		return nil, err
	}

	return &model.DashboardStats{
		TodayCount:     todayCount,
		WeekCount:      weekCount,
		BacklogCount:   backlogCount,
		CompletedToday: completedToday,
	}, nil
}

// ListHistoryInput filters the audit log; a non-positive limit falls back to
// the default of 50 and a negative one is rejected.
type ListHistoryInput struct {
	StartDate *time.Time
	EndDate   *time.Time
	Action    model.Action
	Limit     int
}

func (s *ViewService) ListHistory(ctx context.Context, in ListHistoryInput) ([]model.TaskHistory, error) {
	if in.Limit < 0 {
		return nil, apperrors.ErrInvalidLimit
	}

	return s.history.List(ctx, repository.HistoryQuery{
		From:   in.StartDate,
		To:     in.EndDate,
		Action: in.Action,
		Limit:  in.Limit,
	})
}
