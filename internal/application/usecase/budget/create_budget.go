// Package budget contains budget-related use cases.
package budget

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

// CreateBudgetInput represents the input for budget creation. A nil EndDate
// defaults to one year after the start, inclusive (start + 1 year - 1 day).
type CreateBudgetInput struct {
	UserID     uuid.UUID
	ProjectID  uuid.UUID
	CategoryID uuid.UUID
	PeriodType entity.BudgetPeriodType
	Amount     decimal.Decimal
	StartDate  time.Time
	EndDate    *time.Time
}

// CreateBudgetOutput represents the output of budget creation.
type CreateBudgetOutput struct {
	Budget *BudgetOutput
}

// CreateBudgetUseCase handles budget creation logic.
type CreateBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	projectRepo  adapter.ProjectRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	projectRepo adapter.ProjectRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo:   budgetRepo,
		projectRepo:  projectRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the budget creation.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	// Validate period type
	if input.PeriodType != entity.BudgetPeriodMonthly && input.PeriodType != entity.BudgetPeriodAnnual {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriodType,
			"period type must be 'monthly' or 'annual'",
			domainerror.ErrInvalidBudgetPeriodType,
		)
	}

	// Validate amount
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidBudgetAmount,
		)
	}

	// A budget always limits one category
	if input.CategoryID == uuid.Nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryRequired,
			"a category is required",
			domainerror.ErrBudgetCategoryRequired,
		)
	}

	// Find project and validate ownership
	project, err := uc.findOwnedProject(ctx, input.ProjectID, input.UserID)
	if err != nil {
		return nil, err
	}

	// Validate category
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil || category.UserID != input.UserID {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	// Resolve the budget window
	start := valueobject.NormalizeDate(input.StartDate)
	end := defaultBudgetEnd(start)
	if input.EndDate != nil {
		end = valueobject.NormalizeDate(*input.EndDate)
	}
	if end.Before(start) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetWindow,
			"end date must not precede the start date",
			domainerror.ErrInvalidBudgetWindow,
		)
	}

	// One category gets one budget per period type and window
	exists, err := uc.budgetRepo.ExistsOverlapping(ctx, project.ID, category.ID, input.PeriodType, start, end, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check for overlapping budgets: %w", err)
	}
	if exists {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetAlreadyExists,
			"a budget for this category already overlaps the window",
			domainerror.ErrBudgetAlreadyExists,
		)
	}

	// Create budget entity
	budget := entity.NewBudget(
		input.UserID,
		project.ID,
		category.ID,
		input.PeriodType,
		input.Amount,
		start,
		end,
	)

	// Save budget to database
	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return &CreateBudgetOutput{Budget: toBudgetOutput(budget, category)}, nil
}

func (uc *CreateBudgetUseCase) findOwnedProject(ctx context.Context, projectID, userID uuid.UUID) (*entity.Project, error) {
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

// defaultBudgetEnd returns the inclusive end of a budget starting at start:
// one year later minus a day, so 2024-03-15 runs through 2025-03-14.
func defaultBudgetEnd(start time.Time) time.Time {
	return start.AddDate(1, 0, -1)
}
