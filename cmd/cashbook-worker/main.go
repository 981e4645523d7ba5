package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"cashbook/internal/amqp"
	"cashbook/internal/config"
	applog "cashbook/internal/log"
	"cashbook/internal/services"
	"cashbook/internal/storage"
	"cashbook/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     applog.DefaultConfig().Level,
		Component: applog.ComponentWorker,
	})
	applog.SetDefault(logger)

	logger.Info("Starting cashbook-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", applog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	projections := services.NewProjectionService(repo, repo, repo)
	projectionWorker := worker.NewProjectionWorker(projections)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Recompute once at startup to recover from missed messages.
	if err := projectionWorker.StartupCheck(ctx); err != nil {
		logger.Error("Startup recompute failed", applog.FieldError, err)
		// Keep running, the consumer and ticker will retry.
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeLedgerChanges(gctx, projectionWorker.HandleLedgerChange)
	})

	g.Go(func() error {
		return projectionWorker.RunPeriodic(gctx, cfg.ProjectionInterval)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", applog.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Worker shutdown complete")
}
