// Package project contains project-related use cases.
package project

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
)

// ProjectOutput represents a single project in the output.
type ProjectOutput struct {
	ID                     uuid.UUID
	UserID                 uuid.UUID
	Name                   string
	Description            string
	ParentID               *uuid.UUID
	IsParent               bool
	MonthlyBudget          decimal.Decimal
	AnnualBudget           decimal.Decimal
	StartDate              *time.Time
	EndDate                *time.Time
	ContractDurationMonths int
	HasFund                bool
	MonthlyFundAmount      decimal.Decimal
	ImageURL               string
	ContractURL            string
	Archived               bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// ContractPeriodOutput represents a contract period in the output.
type ContractPeriodOutput struct {
	ID           uuid.UUID
	ProjectID    uuid.UUID
	StartDate    time.Time
	EndDate      time.Time
	ContractYear string
	YearIndex    int
}

// toProjectOutput maps a project entity to its output form.
func toProjectOutput(p *entity.Project) *ProjectOutput {
	return &ProjectOutput{
		ID:                     p.ID,
		UserID:                 p.UserID,
		Name:                   p.Name,
		Description:            p.Description,
		ParentID:               p.ParentID,
		IsParent:               p.IsParent,
		MonthlyBudget:          p.MonthlyBudget,
		AnnualBudget:           p.AnnualBudget,
		StartDate:              p.StartDate,
		EndDate:                p.EndDate,
		ContractDurationMonths: p.ContractDurationMonths,
		HasFund:                p.HasFund,
		MonthlyFundAmount:      p.MonthlyFundAmount,
		ImageURL:               p.ImageURL,
		ContractURL:            p.ContractURL,
		Archived:               p.IsArchived(),
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

// toContractPeriodOutput maps a contract period entity to its output form.
func toContractPeriodOutput(p *entity.ContractPeriod) *ContractPeriodOutput {
	return &ContractPeriodOutput{
		ID:           p.ID,
		ProjectID:    p.ProjectID,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		ContractYear: p.ContractYear,
		YearIndex:    p.YearIndex,
	}
}

// ListProjectsInput represents the input for listing projects.
type ListProjectsInput struct {
	UserID          uuid.UUID
	IncludeArchived bool
	ParentsOnly     bool
	Search          string
}

// ListProjectsOutput represents the output of listing projects.
type ListProjectsOutput struct {
	Projects []*ProjectOutput
}

// ListProjectsUseCase handles listing projects logic.
type ListProjectsUseCase struct {
	projectRepo adapter.ProjectRepository
}

// NewListProjectsUseCase creates a new ListProjectsUseCase instance.
func NewListProjectsUseCase(projectRepo adapter.ProjectRepository) *ListProjectsUseCase {
	return &ListProjectsUseCase{
		projectRepo: projectRepo,
	}
}

// Execute performs the project listing. Archived projects are excluded unless
// explicitly requested.
func (uc *ListProjectsUseCase) Execute(ctx context.Context, input ListProjectsInput) (*ListProjectsOutput, error) {
	projects, err := uc.projectRepo.FindByFilter(ctx, adapter.ProjectFilter{
		UserID:          input.UserID,
		IncludeArchived: input.IncludeArchived,
		ParentsOnly:     input.ParentsOnly,
		Search:          input.Search,
	})
	if err != nil {
		return nil, err
	}

	output := &ListProjectsOutput{
		Projects: make([]*ProjectOutput, len(projects)),
	}
	for i, p := range projects {
		output.Projects[i] = toProjectOutput(p)
	}
	return output, nil
}
