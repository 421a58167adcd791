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

// ListContractPeriodsInput represents the input for listing contract periods.
type ListContractPeriodsInput struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
}

// ListContractPeriodsOutput represents the output of listing contract periods.
type ListContractPeriodsOutput struct {
	Periods         []*ContractPeriodOutput
	CurrentPeriodID *uuid.UUID
}

// ListContractPeriodsUseCase handles listing a project's contract periods.
type ListContractPeriodsUseCase struct {
	projectRepo adapter.ProjectRepository
	periodRepo  adapter.ContractPeriodRepository
}

// NewListContractPeriodsUseCase creates a new ListContractPeriodsUseCase instance.
func NewListContractPeriodsUseCase(
	projectRepo adapter.ProjectRepository,
	periodRepo adapter.ContractPeriodRepository,
) *ListContractPeriodsUseCase {
	return &ListContractPeriodsUseCase{
		projectRepo: projectRepo,
		periodRepo:  periodRepo,
	}
}

// Execute lists the contract periods of a project, oldest first.
func (uc *ListContractPeriodsUseCase) Execute(ctx context.Context, input ListContractPeriodsInput) (*ListContractPeriodsOutput, error) {
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

	output := &ListContractPeriodsOutput{
		Periods: make([]*ContractPeriodOutput, len(periods)),
	}
	for i, p := range periods {
		output.Periods[i] = toContractPeriodOutput(p)
	}
	if current := CurrentPeriod(periods, time.Now().UTC()); current != nil {
		output.CurrentPeriodID = &current.ID
	}
	return output, nil
}
