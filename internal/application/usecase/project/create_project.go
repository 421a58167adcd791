// Package project contains project-related use cases.
package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// CreateProjectInput represents the input for project creation.
type CreateProjectInput struct {
	UserID                 uuid.UUID
	Name                   string
	Description            string
	ParentID               *uuid.UUID
	IsParent               bool
	MonthlyBudget          decimal.Decimal
	AnnualBudget           decimal.Decimal
	StartDate              *time.Time
	ContractDurationMonths int
	HasFund                bool
	MonthlyFundAmount      decimal.Decimal
}

// CreateProjectOutput represents the output of project creation.
type CreateProjectOutput struct {
	Project *ProjectOutput
	Periods []*ContractPeriodOutput
}

// CreateProjectUseCase handles project creation logic.
type CreateProjectUseCase struct {
	projectRepo adapter.ProjectRepository
	periodRepo  adapter.ContractPeriodRepository
	fundRepo    adapter.FundRepository
}

// NewCreateProjectUseCase creates a new CreateProjectUseCase instance.
func NewCreateProjectUseCase(
	projectRepo adapter.ProjectRepository,
	periodRepo adapter.ContractPeriodRepository,
	fundRepo adapter.FundRepository,
) *CreateProjectUseCase {
	return &CreateProjectUseCase{
		projectRepo: projectRepo,
		periodRepo:  periodRepo,
		fundRepo:    fundRepo,
	}
}

// Execute performs the project creation.
func (uc *CreateProjectUseCase) Execute(ctx context.Context, input CreateProjectInput) (*CreateProjectOutput, error) {
	// Validate name
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeProjectNameRequired,
			"project name is required",
			domainerror.ErrProjectNameRequired,
		)
	}

	// Enforce per-user name uniqueness
	taken, err := uc.projectRepo.ExistsByNameAndUser(ctx, name, input.UserID, nil)
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

	// A contract needs a positive duration when it has a start date
	if input.StartDate != nil && input.ContractDurationMonths < 1 {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeInvalidContractDuration,
			"contract duration must be at least one month",
			domainerror.ErrInvalidContractDuration,
		)
	}

	// Validate the parent linkage
	if input.ParentID != nil {
		if input.IsParent {
			return nil, domainerror.NewProjectError(
				domainerror.ErrCodeSubProjectCannotBeParent,
				"a sub-project cannot be a parent project",
				domainerror.ErrSubProjectCannotBeParent,
			)
		}
		parent, err := uc.projectRepo.FindByID(ctx, *input.ParentID)
		if err != nil {
			return nil, domainerror.NewProjectError(
				domainerror.ErrCodeParentProjectNotFound,
				"parent project not found",
				domainerror.ErrParentProjectNotFound,
			)
		}
		if parent.UserID != input.UserID {
			return nil, domainerror.NewProjectError(
				domainerror.ErrCodeNotAuthorizedProject,
				"not authorized to use this parent project",
				domainerror.ErrNotAuthorizedToModifyProject,
			)
		}
		if !parent.IsParent {
			return nil, domainerror.NewProjectError(
				domainerror.ErrCodeNotAParentProject,
				"referenced project is not a parent project",
				domainerror.ErrNotAParentProject,
			)
		}
	}

	// Build the entity; normalize the start date and derive the end date
	var startDate *time.Time
	if input.StartDate != nil {
		d := valueobject.NormalizeDate(*input.StartDate)
		startDate = &d
	}

	project := entity.NewProject(
		input.UserID,
		name,
		input.Description,
		input.ParentID,
		input.IsParent,
		input.MonthlyBudget,
		input.AnnualBudget,
		startDate,
		input.ContractDurationMonths,
	)
	project.HasFund = input.HasFund
	if input.HasFund {
		project.MonthlyFundAmount = input.MonthlyFundAmount
	}
	if startDate != nil {
		end := ContractEndDate(*startDate, input.ContractDurationMonths)
		project.EndDate = &end
	}

	// Save project to database
	if err := uc.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	// Generate contract periods, one per contract year
	var periods []*entity.ContractPeriod
	if startDate != nil {
		periods = GeneratePeriods(project.ID, *startDate, input.ContractDurationMonths, 1)
		if err := uc.periodRepo.CreateBatch(ctx, periods); err != nil {
			return nil, fmt.Errorf("failed to create contract periods: %w", err)
		}
	}

	// Create the fund when enabled
	if input.HasFund {
		fund := entity.NewFund(project.ID, input.MonthlyFundAmount)
		if err := uc.fundRepo.Create(ctx, fund); err != nil {
			return nil, fmt.Errorf("failed to create fund: %w", err)
		}
	}

	output := &CreateProjectOutput{
		Project: toProjectOutput(project),
		Periods: make([]*ContractPeriodOutput, len(periods)),
	}
	for i, p := range periods {
		output.Periods[i] = toContractPeriodOutput(p)
	}
	return output, nil
}
