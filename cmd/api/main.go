// Package main is the entry point for the Property Ledger API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/property-ledger/backend/config"
	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/infra/db"
	"github.com/property-ledger/backend/internal/infra/dependency"
	"github.com/property-ledger/backend/internal/infra/scheduler"
	"github.com/property-ledger/backend/internal/infra/server/router"
	"github.com/property-ledger/backend/internal/integration/email"
	"github.com/property-ledger/backend/internal/integration/email/templates"
	"github.com/property-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/property-ledger/backend/internal/integration/persistence/model"
	"github.com/property-ledger/backend/internal/integration/storage"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting Property Ledger API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Warn("Database connection failed, running without database",
			"error", err,
		)
		database = nil
	}

	var r *router.Router
	var injector *dependency.Injector
	var emailWorkerCancel context.CancelFunc
	var jobScheduler *scheduler.Scheduler
	var redisClose func() error

	if database != nil {
		// Run database migrations
		if err := database.AutoMigrate(
			&model.UserModel{},
			&model.RefreshTokenModel{},
			&model.PasswordResetTokenModel{},
			&model.CategoryModel{},
			&model.SupplierModel{},
			&model.SupplierDocumentModel{},
			&model.ProjectModel{},
			&model.ContractPeriodModel{},
			&model.TransactionModel{},
			&model.TransactionDocumentModel{},
			&model.RecurringTemplateModel{},
			&model.BudgetModel{},
			&model.FundModel{},
			&model.FundMovementModel{},
			&model.EmailQueueModel{},
		); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")

		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()

		// Initialize Redis connection (reference caching and job locks)
		redisClient, err := db.NewRedisConnection(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis connection failed, running without reference caching",
				"error", err,
			)
			redisClient = nil
		} else {
			redisClose = redisClient.Close
		}

		// Initialize object storage. Documents, receipts, project assets and
		// staged uploads all live there, so it is required.
		objectStorage, err := storage.NewMinioStorage(&cfg.Storage)
		if err != nil {
			slog.Error("Failed to connect to object storage", "error", err)
			os.Exit(1)
		}

		// Wire everything
		injector = dependency.NewInjector(cfg, database.DB(), redisClient, objectStorage)
		r = injector.Router
		slog.Info("Application dependencies initialized")

		// Start the email delivery worker
		if cfg.Email.WorkerEnabled {
			renderer, err := templates.NewRenderer()
			if err != nil {
				slog.Error("Failed to parse email templates", "error", err)
				os.Exit(1)
			}

			var sender adapter.EmailSender
			if cfg.Email.ResendAPIKey != "" {
				sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
			} else {
				slog.Warn("RESEND_API_KEY not set, outgoing email is logged instead of delivered")
				sender = email.NewMockEmailSender()
			}

			worker := email.NewWorker(injector.EmailQueueRepo, sender, renderer, email.WorkerConfig{
				PollInterval: cfg.Email.PollInterval,
				BatchSize:    cfg.Email.BatchSize,
			})

			var workerCtx context.Context
			workerCtx, emailWorkerCancel = context.WithCancel(context.Background())
			go worker.Start(workerCtx)
		}

		// Start the background scheduler for recurring generation and fund accrual
		if cfg.Scheduler.Enabled {
			jobScheduler, err = scheduler.New(&cfg.Scheduler, injector.LockService, injector.EnsureGenerated, injector.EnsureAccrued)
			if err != nil {
				slog.Error("Failed to initialize scheduler", "error", err)
				os.Exit(1)
			}
			jobScheduler.Start()
		}
	} else {
		// Health-only server so orchestrators can observe the outage.
		slog.Warn("API routes not initialized due to missing database connection")
		healthController := controller.NewHealthController(
			func() bool { return false },
			func() bool { return false },
		)
		r = router.NewRouter(healthController, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil)
	}

	engine := r.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if jobScheduler != nil {
		jobScheduler.Stop()
	}
	if emailWorkerCancel != nil {
		emailWorkerCancel()
	}
	if redisClose != nil {
		if err := redisClose(); err != nil {
			slog.Error("Failed to close Redis connection", "error", err)
		}
	}

	slog.Info("Server exited properly")
}
