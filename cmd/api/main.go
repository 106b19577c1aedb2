package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saturnino-fabrica-de-software/vigia/internal/alert"
	"github.com/saturnino-fabrica-de-software/vigia/internal/api"
	"github.com/saturnino-fabrica-de-software/vigia/internal/bus"
	"github.com/saturnino-fabrica-de-software/vigia/internal/config"
	"github.com/saturnino-fabrica-de-software/vigia/internal/database"
	"github.com/saturnino-fabrica-de-software/vigia/internal/metrics"
	"github.com/saturnino-fabrica-de-software/vigia/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting Vigia API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
	)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database pool
	pool, err := database.NewPool(ctx, database.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Prometheus exposition on its own listener
	m := metrics.New()
	metricsServer := metrics.NewServer(fmt.Sprintf(":%d", cfg.MetricsPort))
	go func() {
		if err := metricsServer.Serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", slog.Any("error", err))
		}
	}()

	// Event bus
	policy, err := bus.ParseOverflowPolicy(cfg.QueueOverflowPolicy)
	if err != nil {
		return fmt.Errorf("invalid QUEUE_OVERFLOW_POLICY: %w", err)
	}
	eventBus := bus.New(logger, m, bus.SubscriptionConfig{
		Capacity: cfg.EventQueueSize,
		Policy:   policy,
	})

	// Setup router; it owns the pipeline, readiness worker and hub
	router := api.NewRouter(logger, &api.Dependencies{
		Config:        cfg,
		DB:            pool,
		EventBus:      eventBus,
		Metrics:       m,
		NarrativeRepo: repository.NewNarrativeRepository(pool),
		MissionRepo:   repository.NewMissionRepository(pool),
		TeamRepo:      alert.NewRepository(cfg.DatabaseURL),
	})
	router.Setup()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server...")
	done := make(chan error, 1)
	go func() {
		done <- router.Shutdown()
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Error("shutdown error", slog.Any("error", err))
		}
	case <-shutdownCtx.Done():
		logger.Warn("shutdown timed out, exiting")
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.Error("metrics shutdown error", slog.Any("error", err))
	}

	logger.Info("server stopped")

	return nil
}
