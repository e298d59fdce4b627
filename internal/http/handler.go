package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	dto "task-planner.com/task-planner/internal/data_models"
	apperrors "task-planner.com/task-planner/internal/errors"
	"task-planner.com/task-planner/internal/http/validators"
	model "task-planner.com/task-planner/internal/models"
	"task-planner.com/task-planner/internal/recurrence"
	"task-planner.com/task-planner/internal/services"
)

type Handler struct {
	logger zerolog.Logger
	tasks  *services.TaskService
	views  *services.ViewService
}

func NewHandler(
	logger zerolog.Logger,
	tasks *services.TaskService,
	views *services.ViewService,
) *Handler {
	return &Handler{
		logger: logger,
		tasks:  tasks,
		views:  views,
	}
}

func (h *Handler) ListTasks(c echo.Context) error {
	in := services.ListTasksInput{
		View:   c.QueryParam("view"),
		Status: model.Status(c.QueryParam("status")),
	}

	if start, ok := parseDateParam(c.QueryParam("startDate")); ok {
		in.StartDate = &start
	}
	if end, ok := parseDateParam(c.QueryParam("endDate")); ok {
		in.EndDate = &end
	}

	tasks, err := h.views.ListTasks(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, err, "failed to list tasks")
	}

	return c.JSON(http.StatusOK, tasks)
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	dueDate, _ := dto.ParseDate(req.DueDate)
	in := services.CreateTaskInput{
		Title:              req.Title,
		Description:        req.Description,
		DueDate:            dueDate,
		Priority:           model.Priority(req.Priority),
		IsRecurring:        req.IsRecurring,
		RecurrencePattern:  recurrence.Pattern(req.RecurrencePattern),
		RecurrenceInterval: req.RecurrenceInterval,
		ParentTaskID:       req.ParentTaskID,
		Tags:               req.Tags,
	}
	if req.RecurrenceEndDate != "" {
		end, _ := dto.ParseDate(req.RecurrenceEndDate)
		in.RecurrenceEndDate = &end
	}

	task, err := h.tasks.CreateTask(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, err, "failed to create task")
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrTaskIDRequired.Message)
	}

	task, err := h.tasks.GetTask(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "failed to fetch task")
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrTaskIDRequired.Message)
	}

	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateUpdateTaskRequest(&req); err != nil {
		return err
	}

	patch := services.UpdateTaskPatch{
		Title:       req.Title,
		Description: req.Description,
		IsRecurring: req.IsRecurring,
		Tags:        req.Tags,
	}
	if req.DueDate != nil {
		due, _ := dto.ParseDate(*req.DueDate)
		patch.DueDate = &due
	}
	if req.Priority != nil {
		p := model.Priority(*req.Priority)
		patch.Priority = &p
	}
	if req.Status != nil {
		st := model.Status(*req.Status)
		patch.Status = &st
	}
	if req.RecurrencePattern != nil {
		rp := recurrence.Pattern(*req.RecurrencePattern)
		patch.RecurrencePattern = &rp
	}
	patch.RecurrenceInterval = req.RecurrenceInterval
	if req.RecurrenceEndDate != nil {
		if *req.RecurrenceEndDate == "" {
			patch.ClearRecurrenceEndDate = true
		} else {
			end, _ := dto.ParseDate(*req.RecurrenceEndDate)
			patch.RecurrenceEndDate = &end
		}
	}

	task, err := h.tasks.UpdateTask(c.Request().Context(), id, patch)
	if err != nil {
		return h.fail(c, err, "failed to update task")
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrTaskIDRequired.Message)
	}

	if err := h.tasks.DeleteTask(c.Request().Context(), id); err != nil {
		return h.fail(c, err, "failed to delete task")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ApplyAction(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrTaskIDRequired.Message)
	}

	var req dto.LifecycleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateLifecycleRequest(&req); err != nil {
		return err
	}

	var newDueDate *time.Time
	if req.NewDueDate != "" {
		due, _ := dto.ParseDate(req.NewDueDate)
		newDueDate = &due
	}

	task, err := h.tasks.ApplyAction(c.Request().Context(), id, model.Action(req.Action), newDueDate, req.Notes)
	if err != nil {
		return h.fail(c, err, "failed to apply lifecycle action")
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.views.Stats(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "failed to fetch stats")
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) ListHistory(c echo.Context) error {
	in := services.ListHistoryInput{
		Action: model.Action(c.QueryParam("action")),
	}

	if start, ok := parseDateParam(c.QueryParam("startDate")); ok {
		in.StartDate = &start
	}
	if end, ok := parseDateParam(c.QueryParam("endDate")); ok {
		in.EndDate = &end
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrInvalidLimit.Message)
		}
		in.Limit = limit
	}

	entries, err := h.views.ListHistory(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, err, "failed to fetch history")
	}

	return c.JSON(http.StatusOK, entries)
}

// fail translates service errors: exceptions keep their message and status,
// anything else is logged and surfaced as a generic 500 body.
func (h *Handler) fail(c echo.Context, err error, message string) error {
	if apperrors.IsException(err) {
		return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
	}

	h.logger.Error().Err(err).Str("path", c.Path()).Msg(message)
	return echo.NewHTTPError(http.StatusInternalServerError, message)
}

func parseDateParam(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	t, err := dto.ParseDate(raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
