package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "task-planner.com/task-planner/internal/models"
	"task-planner.com/task-planner/internal/ratelimit"
	repository "task-planner.com/task-planner/internal/repositories"
	"task-planner.com/task-planner/internal/services"
)

func setupServer(t *testing.T) *echo.Echo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&model.Task{}, &model.TaskHistory{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	taskRepo := repository.NewTaskRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	taskService := services.NewTaskService(zerolog.Nop(), taskRepo, historyRepo)
	viewService := services.NewViewService(taskRepo, historyRepo)

	e := echo.New()
	handler := NewHandler(zerolog.Nop(), taskService, viewService)
	Register(e, handler, ratelimit.NewMemoryLimiter(10000, time.Minute))

	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeTask(t *testing.T, rec *httptest.ResponseRecorder) model.Task {
	t.Helper()

	var task model.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to decode task: %v (body: %s)", err, rec.Body.String())
	}
	return task
}

func createTaskOverHTTP(t *testing.T, e *echo.Echo, body map[string]interface{}) model.Task {
	t.Helper()

	rec := doJSON(t, e, http.MethodPost, "/tasks", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating task, got %d: %s", rec.Code, rec.Body.String())
	}
	return decodeTask(t, rec)
}

func TestCreateTaskEndpoint(t *testing.T) {
	e := setupServer(t)

	task := createTaskOverHTTP(t, e, map[string]interface{}{
		"title":   "Buy groceries",
		"dueDate": "2024-05-01T10:00:00Z",
		"tags":    []string{"errand"},
	})

	if task.ID == "" {
		t.Error("expected id in response")
	}
	if task.Priority != model.PriorityMedium {
		t.Errorf("expected default priority medium, got %s", task.Priority)
	}
	if task.Status != model.StatusPending {
		t.Errorf("expected status pending, got %s", task.Status)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	e := setupServer(t)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing title", map[string]interface{}{"dueDate": "2024-05-01T10:00:00Z"}},
		{"missing due date", map[string]interface{}{"title": "x"}},
		{"garbage due date", map[string]interface{}{"title": "x", "dueDate": "next tuesday"}},
		{"unknown priority", map[string]interface{}{"title": "x", "dueDate": "2024-05-01", "priority": "urgent"}},
		{"unknown pattern", map[string]interface{}{"title": "x", "dueDate": "2024-05-01", "recurrencePattern": "hourly"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, e, http.MethodPost, "/tasks", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGetTaskNotFound(t *testing.T) {
	e := setupServer(t)

	rec := doJSON(t, e, http.MethodGet, "/tasks/does-not-exist", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestCompleteRecurringTaskOverHTTP(t *testing.T) {
	e := setupServer(t)

	task := createTaskOverHTTP(t, e, map[string]interface{}{
		"title":             "Daily standup notes",
		"dueDate":           "2024-01-10T08:00:00Z",
		"isRecurring":       true,
		"recurrencePattern": "daily",
	})

	rec := doJSON(t, e, http.MethodPost, "/tasks/"+task.ID+"/complete", map[string]interface{}{})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got := decodeTask(t, rec)
	if got.Status != model.StatusPending {
		t.Errorf("expected rolled-forward status pending, got %s", got.Status)
	}
	want := time.Date(2024, time.January, 11, 8, 0, 0, 0, time.UTC)
	if !got.DueDate.Equal(want) {
		t.Errorf("expected due date %v, got %v", want, got.DueDate)
	}
	if got.CompletedAt != nil {
		t.Error("expected completedAt cleared after rollforward")
	}
}

func TestDeferWithoutNewDueDate(t *testing.T) {
	e := setupServer(t)

	task := createTaskOverHTTP(t, e, map[string]interface{}{
		"title":   "Needs a date",
		"dueDate": "2024-05-01T10:00:00Z",
	})

	rec := doJSON(t, e, http.MethodPost, "/tasks/"+task.ID+"/complete", map[string]interface{}{
		"action": "deferred",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateTaskPartialOverHTTP(t *testing.T) {
	e := setupServer(t)

	task := createTaskOverHTTP(t, e, map[string]interface{}{
		"title":   "Keep this title",
		"dueDate": "2024-05-01T10:00:00Z",
	})

	rec := doJSON(t, e, http.MethodPut, "/tasks/"+task.ID, map[string]interface{}{
		"description": "added later",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got := decodeTask(t, rec)
	if got.Title != "Keep this title" {
		t.Errorf("title changed to %q", got.Title)
	}
	if got.Description != "added later" {
		t.Errorf("expected patched description, got %q", got.Description)
	}
}

func TestDeleteTaskKeepsHistoryOverHTTP(t *testing.T) {
	e := setupServer(t)

	task := createTaskOverHTTP(t, e, map[string]interface{}{
		"title":   "Short lived",
		"dueDate": "2024-05-01T10:00:00Z",
	})

	rec := doJSON(t, e, http.MethodDelete, "/tasks/"+task.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, e, http.MethodGet, "/tasks/"+task.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after deletion, got %d", rec.Code)
	}

	rec = doJSON(t, e, http.MethodGet, "/history?action=deleted", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from history, got %d", rec.Code)
	}
	var entries []model.TaskHistory
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(entries) != 1 || entries[0].TaskTitle != "Short lived" {
		t.Errorf("expected one deleted entry with the snapshot title, got %+v", entries)
	}
}

func TestListTasksByView(t *testing.T) {
	e := setupServer(t)

	overdue := createTaskOverHTTP(t, e, map[string]interface{}{
		"title":   "Overdue",
		"dueDate": time.Now().Add(-48 * time.Hour).Format(time.RFC3339),
	})
	createTaskOverHTTP(t, e, map[string]interface{}{
		"title":   "Far future",
		"dueDate": time.Now().AddDate(0, 2, 0).Format(time.RFC3339),
	})

	rec := doJSON(t, e, http.MethodGet, "/tasks?view=backlog", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var tasks []model.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("failed to decode tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != overdue.ID {
		t.Errorf("expected only the overdue task in backlog, got %d tasks", len(tasks))
	}
}

func TestStatsEndpoint(t *testing.T) {
	e := setupServer(t)

	createTaskOverHTTP(t, e, map[string]interface{}{
		"title":   "Overdue",
		"dueDate": time.Now().Add(-48 * time.Hour).Format(time.RFC3339),
	})

	rec := doJSON(t, e, http.MethodGet, "/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var stats model.DashboardStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	if stats.BacklogCount != 1 {
		t.Errorf("expected backlogCount 1, got %d", stats.BacklogCount)
	}
	if stats.CompletedToday != 0 {
		t.Errorf("expected completedToday 0, got %d", stats.CompletedToday)
	}
}

func TestHistoryLimitValidation(t *testing.T) {
	e := setupServer(t)

	rec := doJSON(t, e, http.MethodGet, "/history?limit=abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric limit, got %d", rec.Code)
	}

	rec = doJSON(t, e, http.MethodGet, "/history?limit=-5", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative limit, got %d", rec.Code)
	}
}
