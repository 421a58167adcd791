// Package scheduler runs the daily background jobs.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/property-ledger/backend/config"
	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/application/usecase/fund"
	"github.com/property-ledger/backend/internal/application/usecase/recurring"
)

// Scheduler owns the cron runner for the daily catch-up jobs: recurring
// transaction generation and monthly fund accrual. Each job takes a
// distributed lock first so only one instance performs the work.
type Scheduler struct {
	cron            *cron.Cron
	cfg             *config.SchedulerConfig
	locks           adapter.LockService
	ensureGenerated *recurring.EnsureGeneratedUseCase
	ensureAccrued   *fund.EnsureAccruedUseCase
}

// New creates a scheduler with both jobs registered. It returns an error
// when a cron spec does not parse.
func New(
	cfg *config.SchedulerConfig,
	locks adapter.LockService,
	ensureGenerated *recurring.EnsureGeneratedUseCase,
	ensureAccrued *fund.EnsureAccruedUseCase,
) (*Scheduler, error) {
	s := &Scheduler{
		cron:            cron.New(),
		cfg:             cfg,
		locks:           locks,
		ensureGenerated: ensureGenerated,
		ensureAccrued:   ensureAccrued,
	}

	if _, err := s.cron.AddFunc(cfg.RecurringSpec, s.runRecurringGeneration); err != nil {
		return nil, fmt.Errorf("invalid recurring job spec %q: %w", cfg.RecurringSpec, err)
	}
	if _, err := s.cron.AddFunc(cfg.FundAccrualSpec, s.runFundAccrual); err != nil {
		return nil, fmt.Errorf("invalid fund accrual job spec %q: %w", cfg.FundAccrualSpec, err)
	}

	return s, nil
}

// Start launches the cron runner. Jobs run in their own goroutines.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Scheduler started",
		"recurring_spec", s.cfg.RecurringSpec,
		"fund_accrual_spec", s.cfg.FundAccrualSpec,
	)
}

// Stop halts the cron runner and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) runRecurringGeneration() {
	s.runLocked("recurring_generation", s.cfg.RecurringLockKey, func(ctx context.Context) {
		output, err := s.ensureGenerated.Execute(ctx, recurring.EnsureGeneratedInput{})
		if err != nil {
			slog.Error("Recurring generation job failed", "error", err)
			return
		}
		slog.Info("Recurring generation job finished",
			"processed_templates", output.ProcessedTemplates,
			"generated", output.GeneratedCount,
			"failed", output.FailedCount,
		)
	})
}

func (s *Scheduler) runFundAccrual() {
	s.runLocked("fund_accrual", s.cfg.FundAccrualLockKey, func(ctx context.Context) {
		output, err := s.ensureAccrued.Execute(ctx, fund.EnsureAccruedInput{})
		if err != nil {
			slog.Error("Fund accrual job failed", "error", err)
			return
		}
		slog.Info("Fund accrual job finished",
			"processed_funds", output.ProcessedFunds,
			"accrued", output.AccruedCount,
			"failed", output.FailedCount,
		)
	})
}

// runLocked runs fn under the job's distributed lock. The job context is
// bounded by the lock TTL so the work never outlives the lock. Without a
// lock service the job runs unlocked (single-instance deployments).
func (s *Scheduler) runLocked(name, key string, fn func(ctx context.Context)) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.LockTTL)
	defer cancel()

	if s.locks != nil {
		lock, err := s.locks.Obtain(ctx, key, s.cfg.LockTTL)
		if errors.Is(err, adapter.ErrLockNotObtained) {
			slog.Info("Skipping job, another instance holds the lock", "job", name)
			return
		}
		if err != nil {
			slog.Error("Failed to obtain job lock", "job", name, "error", err)
			return
		}
		defer func() {
			// The job context may already be expired, release with a fresh one.
			if err := lock.Release(context.Background()); err != nil && !errors.Is(err, context.Canceled) {
				slog.Warn("Failed to release job lock", "job", name, "error", err)
			}
		}()
	}

	fn(ctx)
}
