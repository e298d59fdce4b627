package http

import (
	"github.com/labstack/echo/v4"

	middleware "task-planner.com/task-planner/internal/http/middlewares"
	"task-planner.com/task-planner/internal/ratelimit"
)

func Register(e *echo.Echo, h *Handler, limiter ratelimit.Limiter) {
	e.Use(middleware.RateLimiter(limiter))

	e.GET("/tasks", h.ListTasks)
	e.POST("/tasks", h.CreateTask)
	e.GET("/tasks/:id", h.GetTask)
	e.PUT("/tasks/:id", h.UpdateTask)
	e.DELETE("/tasks/:id", h.DeleteTask)
	e.POST("/tasks/:id/complete", h.ApplyAction)
	e.GET("/stats", h.Stats)
	e.GET("/history", h.ListHistory)
}
