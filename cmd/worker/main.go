package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/mvera/storedash/internal/database"
	"github.com/mvera/storedash/internal/tasks"
	"github.com/mvera/storedash/pkg/config"
	"github.com/mvera/storedash/pkg/queue"
	"github.com/mvera/storedash/pkg/util"
)

// Schedule for the pending-store sweep, standard 5-field cron.
const sweepCronExpr = "0 * * * *"

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := util.NewLogger(cfg.Server.Env)
	slog.SetDefault(logger)

	logger.Info("starting storedash worker")

	// Connect to database
	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Create Asynq server
	srv := queue.NewServer(&cfg.Redis, 10)

	// Create task handler
	handler := tasks.NewHandler(db, logger)

	// Register handlers
	mux := asynq.NewServeMux()
	handler.RegisterHandlers(mux)

	// Handle shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Enqueue the pending-store sweep on its cron schedule
	client := queue.NewClient(&cfg.Redis)
	go runSweepScheduler(ctx, client, logger)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down worker...")
		srv.Shutdown()
		cancel()
	}()

	logger.Info("worker started, waiting for tasks...")

	// Start the server
	if err := srv.Run(mux); err != nil {
		logger.Error("worker error", "error", err)
	}

	// Wait for context cancellation
	<-ctx.Done()

	client.Close()

	// Close database connection
	sqlDB, _ := db.DB()
	sqlDB.Close()

	logger.Info("worker stopped")
}

// runSweepScheduler enqueues a pending-store sweep at each tick of
// sweepCronExpr until ctx is cancelled.
func runSweepScheduler(ctx context.Context, client *asynq.Client, logger *slog.Logger) {
	for {
		next, err := util.NextCronTime(sweepCronExpr, time.Now())
		if err != nil {
			logger.Error("invalid sweep schedule", "error", err)
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(next)):
		}

		task, err := tasks.NewPendingSweepTask(tasks.PendingSweepPayload{})
		if err != nil {
			logger.Error("failed to build sweep task", "error", err)
			continue
		}
		if _, err := client.EnqueueContext(ctx, task); err != nil {
			logger.Error("failed to enqueue sweep task", "error", err)
			continue
		}
		logger.Info("enqueued pending store sweep", "next", next)
	}
}
