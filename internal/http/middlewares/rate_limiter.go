package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"task-planner.com/task-planner/internal/ratelimit"
)

// RateLimiter throttles by client IP. A limiter backend failure fails open:
// throttling is protection, not a feature the API promises.
func RateLimiter(limiter ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err == nil && !ok {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			return next(c)
		}
	}
}
