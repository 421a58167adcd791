package fund

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// EnsureAccruedInput represents the input for the accrual catch-up. With a
// ProjectID it runs for one project on behalf of its owner; with neither it
// processes every enabled fund, which is how the scheduler runs it.
type EnsureAccruedInput struct {
	ProjectID *uuid.UUID
	UserID    *uuid.UUID
}

// EnsureAccruedOutput represents the output of the accrual catch-up.
type EnsureAccruedOutput struct {
	ProcessedFunds int
	AccruedCount   int
	FailedCount    int
}

// EnsureAccruedUseCase credits each fund's monthly amount once per calendar
// month, catching up every month since the last accrual. Months before the
// fund existed are not credited. Safe to run repeatedly.
type EnsureAccruedUseCase struct {
	projectRepo adapter.ProjectRepository
	fundRepo    adapter.FundRepository
}

// NewEnsureAccruedUseCase creates a new EnsureAccruedUseCase instance.
func NewEnsureAccruedUseCase(
	projectRepo adapter.ProjectRepository,
	fundRepo adapter.FundRepository,
) *EnsureAccruedUseCase {
	return &EnsureAccruedUseCase{
		projectRepo: projectRepo,
		fundRepo:    fundRepo,
	}
}

// Execute performs the accrual catch-up.
func (uc *EnsureAccruedUseCase) Execute(ctx context.Context, input EnsureAccruedInput) (*EnsureAccruedOutput, error) {
	funds, err := uc.loadFunds(ctx, input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	output := &EnsureAccruedOutput{}
	for _, fund := range funds {
		output.ProcessedFunds++
		accrued, err := uc.accrue(ctx, fund, now)
		output.AccruedCount += accrued
		if err != nil {
			slog.Warn("failed to accrue fund", "fund_id", fund.ID, "error", err)
			output.FailedCount++
		}
	}

	return output, nil
}

func (uc *EnsureAccruedUseCase) loadFunds(ctx context.Context, input EnsureAccruedInput) ([]*entity.Fund, error) {
	if input.ProjectID == nil {
		funds, err := uc.fundRepo.FindAllWithMonthlyAmount(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list funds: %w", err)
		}
		return funds, nil
	}

	if input.UserID == nil {
		return nil, domainerror.NewFundError(
			domainerror.ErrCodeFundNotFound,
			"project has no fund",
			domainerror.ErrFundNotFound,
		)
	}
	project, err := findOwnedProject(ctx, uc.projectRepo, *input.ProjectID, *input.UserID)
	if err != nil {
		return nil, err
	}
	if !project.HasFund {
		return nil, domainerror.NewFundError(
			domainerror.ErrCodeFundDisabled,
			"fund is not enabled for this project",
			domainerror.ErrFundDisabled,
		)
	}

	fund, err := uc.fundRepo.FindByProject(ctx, project.ID)
	if err != nil {
		if errors.Is(err, domainerror.ErrFundNotFound) {
			return nil, domainerror.NewFundError(
				domainerror.ErrCodeFundNotFound,
				"project has no fund",
				domainerror.ErrFundNotFound,
			)
		}
		return nil, fmt.Errorf("failed to load fund: %w", err)
	}
	return []*entity.Fund{fund}, nil
}

// accrue credits the fund month by month through the month containing now.
// Each accrual writes its movement and the updated balance before moving on,
// so a failure never leaves the balance out of step with the movements.
func (uc *EnsureAccruedUseCase) accrue(ctx context.Context, fund *entity.Fund, now time.Time) (int, error) {
	if !fund.MonthlyAmount.IsPositive() {
		return 0, nil
	}

	cursor := firstPendingAccrual(fund)
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	accrued := 0
	for !cursor.After(currentMonth) {
		period := entity.PeriodKey(cursor.Year(), cursor.Month())
		movement := entity.NewFundMovement(
			fund.ID,
			entity.FundMovementAccrual,
			fund.MonthlyAmount,
			cursor,
			nil,
			fmt.Sprintf("monthly accrual %s", period),
		)
		if err := uc.fundRepo.CreateMovement(ctx, movement); err != nil {
			return accrued, fmt.Errorf("failed to record accrual: %w", err)
		}
		fund.Apply(movement)
		fund.LastAccruedPeriod = period
		if err := uc.fundRepo.Update(ctx, fund); err != nil {
			return accrued, fmt.Errorf("failed to update fund balance: %w", err)
		}
		accrued++
		cursor = cursor.AddDate(0, 1, 0)
	}
	return accrued, nil
}

// firstPendingAccrual returns the first month that may still need an accrual:
// the month after the last accrued period, or the month the fund was created
// in when nothing accrued yet.
func firstPendingAccrual(fund *entity.Fund) time.Time {
	if fund.LastAccruedPeriod != "" {
		if last, err := time.Parse("2006-01", fund.LastAccruedPeriod); err == nil {
			return time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
		}
	}
	return time.Date(fund.CreatedAt.Year(), fund.CreatedAt.Month(), 1, 0, 0, 0, 0, time.UTC)
}
