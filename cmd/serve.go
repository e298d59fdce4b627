package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "task-planner.com/task-planner/internal/configs"
	httpapi "task-planner.com/task-planner/internal/http"
	"task-planner.com/task-planner/internal/ratelimit"
	repository "task-planner.com/task-planner/internal/repositories"
	"task-planner.com/task-planner/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task planner HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		envLoaded := godotenv.Load() == nil

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger := config.NewLogger(cfg.Env)
		if !envLoaded {
			logger.Info().Msg(".env file not found, using environment variables")
		}

		db, err := config.New(cfg.DatabaseDSN)
		if err != nil {
			return err
		}

		taskRepo := repository.NewTaskRepository(db)
		historyRepo := repository.NewHistoryRepository(db)

		taskService := services.NewTaskService(logger, taskRepo, historyRepo)
		viewService := services.NewViewService(taskRepo, historyRepo)

		var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit, time.Minute)
		if addr := cfg.RedisAddr(); addr != "" {
			redisClient, err := config.NewRedisClient(addr)
			if err != nil {
				return err
			}
			defer redisClient.Close()

			limiter = ratelimit.NewRedisLimiter(redisClient, "ratelimit", cfg.RateLimit, time.Minute)
			logger.Info().Str("addr", addr).Msg("using redis-backed rate limiter")
		}

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true

		handler := httpapi.NewHandler(logger, taskService, viewService)
		httpapi.Register(e, handler, limiter)

		go func() {
			logger.Info().Str("addr", cfg.AppURL()).Msg("HTTP server listening")
			if err := e.Start(cfg.AppURL()); err != nil {
				logger.Info().Err(err).Msg("server stopped")
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		ctx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(ctx)

		logger.Info().Msg("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
