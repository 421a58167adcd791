// Package project contains project-related use cases.
package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// RenewContractInput represents the input for a contract renewal. The new
// duration runs from the current contract period, or from an explicitly
// chosen earlier period when EffectivePeriodID is set.
type RenewContractInput struct {
	ProjectID         uuid.UUID
	UserID            uuid.UUID
	DurationMonths    int
	EffectivePeriodID *uuid.UUID
}

// RenewContractOutput represents the output of a contract renewal.
type RenewContractOutput struct {
	Project *ProjectOutput
	Periods []*ContractPeriodOutput
}

// RenewContractUseCase handles contract renewals. Periods before the
// effective one are preserved; the effective period and everything after it
// are regenerated from the new duration.
type RenewContractUseCase struct {
	projectRepo adapter.ProjectRepository
	periodRepo  adapter.ContractPeriodRepository
}

// NewRenewContractUseCase creates a new RenewContractUseCase instance.
func NewRenewContractUseCase(
	projectRepo adapter.ProjectRepository,
	periodRepo adapter.ContractPeriodRepository,
) *RenewContractUseCase {
	return &RenewContractUseCase{
		projectRepo: projectRepo,
		periodRepo:  periodRepo,
	}
}

// Execute performs the contract renewal.
func (uc *RenewContractUseCase) Execute(ctx context.Context, input RenewContractInput) (*RenewContractOutput, error) {
	if input.DurationMonths < 1 {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeInvalidContractDuration,
			"contract duration must be at least one month",
			domainerror.ErrInvalidContractDuration,
		)
	}

	project, err := uc.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		if errors.Is(err, domainerror.ErrProjectNotFound) {
			return nil, domainerror.NewProjectError(
				domainerror.ErrCodeProjectNotFound,
				"project not found",
				domainerror.ErrProjectNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if project.UserID != input.UserID {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeProjectNotFound,
			"project not found",
			domainerror.ErrProjectNotFound,
		)
	}

	periods, err := uc.periodRepo.FindByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contract periods: %w", err)
	}
	if len(periods) == 0 {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeProjectHasNoStartDate,
			"project has no contract to renew",
			domainerror.ErrProjectHasNoStartDate,
		)
	}

	// Resolve the effective period: the chosen one, or the current one, or
	// the first when the contract has not started yet.
	effective := periods[0]
	if input.EffectivePeriodID != nil {
		found := false
		for _, p := range periods {
			if p.ID == *input.EffectivePeriodID {
				effective = p
				found = true
				break
			}
		}
		if !found {
			return nil, domainerror.NewProjectError(
				domainerror.ErrCodeContractPeriodNotFound,
				"contract period not found",
				domainerror.ErrContractPeriodNotFound,
			)
		}
	} else if current := CurrentPeriod(periods, time.Now().UTC()); current != nil {
		effective = current
	}

	// Regenerate from the effective period onward
	if err := uc.periodRepo.DeleteFromIndex(ctx, project.ID, effective.YearIndex); err != nil {
		return nil, fmt.Errorf("failed to drop renewed periods: %w", err)
	}

	renewed := GeneratePeriods(project.ID, effective.StartDate, input.DurationMonths, effective.YearIndex)
	if err := uc.periodRepo.CreateBatch(ctx, renewed); err != nil {
		return nil, fmt.Errorf("failed to create renewed periods: %w", err)
	}

	// The contract now runs to the end of the renewed term
	end := ContractEndDate(effective.StartDate, input.DurationMonths)
	project.EndDate = &end
	project.ContractDurationMonths = input.DurationMonths
	project.UpdatedAt = time.Now().UTC()
	if err := uc.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	// Return the full refreshed sequence
	all, err := uc.periodRepo.FindByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload contract periods: %w", err)
	}

	output := &RenewContractOutput{
		Project: toProjectOutput(project),
		Periods: make([]*ContractPeriodOutput, len(all)),
	}
	for i, p := range all {
		output.Periods[i] = toContractPeriodOutput(p)
	}
	return output, nil
}
