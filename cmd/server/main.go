package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"job-recommender/internal/di"
	"job-recommender/internal/infra"
	"job-recommender/internal/infra/config"
	"job-recommender/internal/infra/logger"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()

	// 2. Initialize logger
	log := logger.New()
	log.Info("Starting job recommendation service",
		"env", cfg.Env,
		"port", cfg.Port)

	ctx := context.Background()

	// 3. Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)
	pool, err := infra.NewPostgresDB(ctx, dsn, infra.PoolConfig{
		MaxConns: cfg.DB.MaxConns,
		MinConns: cfg.DB.MinConns,
	})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 4. Wire dependencies
	components := di.NewComponents(cfg, pool, log)

	// 5. Start background reference dataset loader
	components.ReferenceLoader.Start()
	defer components.ReferenceLoader.Stop()

	// 6. HTTP server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Attach a request id to the context so downstream log lines can be
	// correlated per upload.
	ctxLog := logger.NewContextLogger("job-recommender")
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logger.WithRequestID(c.Request().Context(), uuid.New().String())
			c.SetRequest(c.Request().WithContext(ctx))
			ctxLog.WithContext(ctx).Debug("request_received",
				"method", c.Request().Method,
				"path", c.Request().URL.Path)
			return next(c)
		}
	})
	e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(cfg.RateLimit.PerSecond),
			Burst: cfg.RateLimit.Burst,
		}),
	}))

	e.POST("/v1/recommend", components.Handler.Recommend)
	e.GET("/v1/evaluation/status", components.Handler.EvaluationStatus)
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/readyz", func(c echo.Context) error {
		if err := pool.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "db unavailable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	})

	go func() {
		addr := ":" + cfg.Port
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Error("Server stopped", "error", err)
			os.Exit(1)
		}
	}()

	// 7. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", "error", err)
	}
	log.Info("Server exited")
}
