package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-planner.com/task-planner/internal/data_models"
	model "task-planner.com/task-planner/internal/models"
	"task-planner.com/task-planner/internal/recurrence"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if r.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if r.DueDate == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "dueDate is required")
	}
	if _, err := dto.ParseDate(r.DueDate); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dueDate must be a valid ISO-8601 date")
	}
	if r.Priority != "" && !model.Priority(r.Priority).Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "priority must be one of high, medium, low")
	}
	if r.RecurrencePattern != "" && !recurrence.Pattern(r.RecurrencePattern).Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown recurrence pattern")
	}
	if r.RecurrenceEndDate != "" {
		if _, err := dto.ParseDate(r.RecurrenceEndDate); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "recurrenceEndDate must be a valid ISO-8601 date")
		}
	}
	return nil
}

func ValidateUpdateTaskRequest(r *dto.UpdateTaskRequest) error {
	if r.Title != nil && *r.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title must not be empty")
	}
	if r.DueDate != nil {
		if _, err := dto.ParseDate(*r.DueDate); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "dueDate must be a valid ISO-8601 date")
		}
	}
	if r.Priority != nil && !model.Priority(*r.Priority).Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "priority must be one of high, medium, low")
	}
	if r.Status != nil && !model.Status(*r.Status).Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
	}
	if r.RecurrencePattern != nil && !recurrence.Pattern(*r.RecurrencePattern).Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown recurrence pattern")
	}
	if r.RecurrenceEndDate != nil && *r.RecurrenceEndDate != "" {
		if _, err := dto.ParseDate(*r.RecurrenceEndDate); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "recurrenceEndDate must be a valid ISO-8601 date")
		}
	}
	return nil
}

func ValidateLifecycleRequest(r *dto.LifecycleRequest) error {
	if r.Action != "" && !model.Action(r.Action).ValidLifecycle() {
		return echo.NewHTTPError(http.StatusBadRequest, "action must be one of completed, skipped, deferred")
	}
	if r.NewDueDate != "" {
		if _, err := dto.ParseDate(r.NewDueDate); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "newDueDate must be a valid ISO-8601 date")
		}
	}
	return nil
}
