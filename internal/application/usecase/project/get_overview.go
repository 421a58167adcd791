// Package project contains project-related use cases.
package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// GetProjectOverviewInput represents the input for the project overview.
type GetProjectOverviewInput struct {
	ProjectID       uuid.UUID
	UserID          uuid.UUID
	ViewingPeriodID *uuid.UUID
}

// OverviewFundOutput represents the fund state embedded in the overview.
type OverviewFundOutput struct {
	Balance           decimal.Decimal
	MonthlyAmount     decimal.Decimal
	IsNegative        bool
	LastAccruedPeriod string
}

// GetProjectOverviewOutput is the combined payload the project screen loads
// in one call.
type GetProjectOverviewOutput struct {
	Project        *ProjectOutput
	Periods        []*ContractPeriodOutput
	CurrentPeriod  *ContractPeriodOutput
	SelectedPeriod *ContractPeriodOutput
	Fund           *OverviewFundOutput
	Budgets        []*entity.BudgetProgress
	Categories     []*entity.Category
	Window         valueobject.Window
}

// GetProjectOverviewUseCase assembles the project overview: the project, its
// contract periods, fund state, budget progress, categories, and the resolved
// display window.
type GetProjectOverviewUseCase struct {
	projectRepo  adapter.ProjectRepository
	periodRepo   adapter.ContractPeriodRepository
	fundRepo     adapter.FundRepository
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	txRepo       adapter.TransactionRepository
}

// NewGetProjectOverviewUseCase creates a new GetProjectOverviewUseCase instance.
func NewGetProjectOverviewUseCase(
	projectRepo adapter.ProjectRepository,
	periodRepo adapter.ContractPeriodRepository,
	fundRepo adapter.FundRepository,
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	txRepo adapter.TransactionRepository,
) *GetProjectOverviewUseCase {
	return &GetProjectOverviewUseCase{
		projectRepo:  projectRepo,
		periodRepo:   periodRepo,
		fundRepo:     fundRepo,
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		txRepo:       txRepo,
	}
}

// Execute assembles the overview payload.
func (uc *GetProjectOverviewUseCase) Execute(ctx context.Context, input GetProjectOverviewInput) (*GetProjectOverviewOutput, error) {
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

	now := time.Now().UTC()
	current := CurrentPeriod(periods, now)

	var selected *entity.ContractPeriod
	if input.ViewingPeriodID != nil {
		for _, p := range periods {
			if p.ID == *input.ViewingPeriodID {
				selected = p
				break
			}
		}
		if selected == nil {
			return nil, domainerror.NewProjectError(
				domainerror.ErrCodeContractPeriodNotFound,
				"contract period not found",
				domainerror.ErrContractPeriodNotFound,
			)
		}
	}

	window := resolveOverviewWindow(project, current, selected, now)

	fund, err := uc.loadFund(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	budgets, err := uc.loadBudgetProgress(ctx, project, categories, now)
	if err != nil {
		return nil, err
	}

	output := &GetProjectOverviewOutput{
		Project:    toProjectOutput(project),
		Periods:    make([]*ContractPeriodOutput, len(periods)),
		Fund:       fund,
		Budgets:    budgets,
		Categories: categories,
		Window:     window,
	}
	for i, p := range periods {
		output.Periods[i] = toContractPeriodOutput(p)
	}
	if current != nil {
		output.CurrentPeriod = toContractPeriodOutput(current)
	}
	if selected != nil {
		output.SelectedPeriod = toContractPeriodOutput(selected)
	}
	return output, nil
}

// resolveOverviewWindow picks the display window: a selected historical
// period wins; a project already over before the current month shows its
// whole contract; everything else shows the current month.
func resolveOverviewWindow(project *entity.Project, current, selected *entity.ContractPeriod, now time.Time) valueobject.Window {
	if selected != nil && (current == nil || selected.ID != current.ID) {
		return valueobject.NewWindow(valueobject.WindowModePeriod, selected.StartDate, selected.EndDate)
	}

	monthStart, monthEnd := valueobject.MonthBounds(now)
	if project.StartDate != nil && project.EndDate != nil {
		// EndDate is exclusive; the last covered day is the day before.
		lastCovered := project.EndDate.AddDate(0, 0, -1)
		if lastCovered.Before(monthStart) {
			return valueobject.NewWindow(valueobject.WindowModeProject, *project.StartDate, lastCovered)
		}
	}
	return valueobject.NewWindow(valueobject.WindowModeCurrentMonth, monthStart, monthEnd)
}

func (uc *GetProjectOverviewUseCase) loadFund(ctx context.Context, projectID uuid.UUID) (*OverviewFundOutput, error) {
	fund, err := uc.fundRepo.FindByProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, domainerror.ErrFundNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load fund: %w", err)
	}
	return &OverviewFundOutput{
		Balance:           fund.Balance,
		MonthlyAmount:     fund.MonthlyAmount,
		IsNegative:        fund.IsNegative(),
		LastAccruedPeriod: fund.LastAccruedPeriod,
	}, nil
}

func (uc *GetProjectOverviewUseCase) loadBudgetProgress(ctx context.Context, project *entity.Project, categories []*entity.Category, now time.Time) ([]*entity.BudgetProgress, error) {
	budgets, err := uc.budgetRepo.FindByFilter(ctx, adapter.BudgetFilter{
		UserID:    project.UserID,
		ProjectID: &project.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	if len(budgets) == 0 {
		return nil, nil
	}

	// One transaction fetch over the hull of every budget window
	hullStart, hullEnd := budgets[0].WindowFor(now)
	for _, b := range budgets[1:] {
		start, end := b.WindowFor(now)
		hullStart = valueobject.MinDate(hullStart, start)
		hullEnd = valueobject.MaxDate(hullEnd, end)
	}
	transactions, err := uc.txRepo.FindOverlappingWindow(ctx, []uuid.UUID{project.ID}, hullStart, hullEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget transactions: %w", err)
	}

	byID := make(map[uuid.UUID]*entity.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	progress := make([]*entity.BudgetProgress, len(budgets))
	for i, b := range budgets {
		progress[i] = b.ProgressFor(byID[b.CategoryID], transactions, now)
	}
	return progress, nil
}
