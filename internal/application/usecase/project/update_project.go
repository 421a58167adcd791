// Package project contains project-related use cases.
package project

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// UpdateProjectInput represents the input for project update. Contract dates
// are not editable here; renewals own duration changes.
type UpdateProjectInput struct {
	ProjectID         uuid.UUID
	UserID            uuid.UUID
	Name              *string
	Description       *string
	MonthlyBudget     *decimal.Decimal
	AnnualBudget      *decimal.Decimal
	HasFund           *bool
	MonthlyFundAmount *decimal.Decimal
}

// UpdateProjectOutput represents the output of project update.
type UpdateProjectOutput struct {
	Project *ProjectOutput
}

// UpdateProjectUseCase handles project update logic.
type UpdateProjectUseCase struct {
	projectRepo adapter.ProjectRepository
	fundRepo    adapter.FundRepository
}

// NewUpdateProjectUseCase creates a new UpdateProjectUseCase instance.
func NewUpdateProjectUseCase(
	projectRepo adapter.ProjectRepository,
	fundRepo adapter.FundRepository,
) *UpdateProjectUseCase {
	return &UpdateProjectUseCase{
		projectRepo: projectRepo,
		fundRepo:    fundRepo,
	}
}

// Execute performs the project update.
func (uc *UpdateProjectUseCase) Execute(ctx context.Context, input UpdateProjectInput) (*UpdateProjectOutput, error) {
	project, err := uc.findOwnedProject(ctx, input.ProjectID, input.UserID)
	if err != nil {
		return nil, err
	}

	// Update fields if provided
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewProjectError(
				domainerror.ErrCodeProjectNameRequired,
				"project name is required",
				domainerror.ErrProjectNameRequired,
			)
		}
		taken, err := uc.projectRepo.ExistsByNameAndUser(ctx, name, input.UserID, &project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check project name: %w", err)
		}
		if taken {
			return nil, domainerror.NewProjectError(
				domainerror.ErrCodeProjectNameTaken,
				"a project with this name already exists",
				domainerror.ErrProjectNameTaken,
			)
		}
		project.Name = name
	}

	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.MonthlyBudget != nil {
		project.MonthlyBudget = *input.MonthlyBudget
	}
	if input.AnnualBudget != nil {
		project.AnnualBudget = *input.AnnualBudget
	}

	// Fund toggling. Disabling keeps the fund row and its history; accrual
	// simply stops while has_fund is off.
	if input.HasFund != nil {
		project.HasFund = *input.HasFund
	}
	if input.MonthlyFundAmount != nil {
		project.MonthlyFundAmount = *input.MonthlyFundAmount
	}
	if project.HasFund {
		if err := uc.ensureFund(ctx, project); err != nil {
			return nil, err
		}
	}

	project.UpdatedAt = time.Now().UTC()

	if err := uc.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return &UpdateProjectOutput{Project: toProjectOutput(project)}, nil
}

// findOwnedProject loads the project and enforces ownership, mapping both
// failures to not-found.
func (uc *UpdateProjectUseCase) findOwnedProject(ctx context.Context, projectID, userID uuid.UUID) (*entity.Project, error) {
	project, err := uc.projectRepo.FindByID(ctx, projectID)
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
	if project.UserID != userID {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeProjectNotFound,
			"project not found",
			domainerror.ErrProjectNotFound,
		)
	}
	return project, nil
}

// ensureFund creates the fund row when it does not exist yet and keeps its
// monthly amount in sync with the project.
func (uc *UpdateProjectUseCase) ensureFund(ctx context.Context, project *entity.Project) error {
	fund, err := uc.fundRepo.FindByProject(ctx, project.ID)
	if err != nil {
		if errors.Is(err, domainerror.ErrFundNotFound) {
			if err := uc.fundRepo.Create(ctx, entity.NewFund(project.ID, project.MonthlyFundAmount)); err != nil {
				return fmt.Errorf("failed to create fund: %w", err)
			}
			return nil
		}
		return fmt.Errorf("failed to load fund: %w", err)
	}

	if !fund.MonthlyAmount.Equal(project.MonthlyFundAmount) {
		fund.MonthlyAmount = project.MonthlyFundAmount
		fund.UpdatedAt = time.Now().UTC()
		if err := uc.fundRepo.Update(ctx, fund); err != nil {
			return fmt.Errorf("failed to update fund: %w", err)
		}
	}
	return nil
}
