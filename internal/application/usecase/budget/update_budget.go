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

// UpdateBudgetInput represents the input for updating a budget. Nil fields
// keep their current value.
type UpdateBudgetInput struct {
	BudgetID   uuid.UUID
	UserID     uuid.UUID
	CategoryID *uuid.UUID
	PeriodType *entity.BudgetPeriodType
	Amount     *decimal.Decimal
	StartDate  *time.Time
	EndDate    *time.Time
}

// UpdateBudgetOutput represents the output of updating a budget.
type UpdateBudgetOutput struct {
	Budget *BudgetOutput
}

// UpdateBudgetUseCase handles budget updates.
type UpdateBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the budget update.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	// Find budget and validate ownership
	budget, err := uc.budgetRepo.FindByID(ctx, input.BudgetID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetNotFound,
				"budget not found",
				domainerror.ErrBudgetNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}
	if budget.UserID != input.UserID {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeNotAuthorizedBudget,
			"not authorized to modify this budget",
			domainerror.ErrNotAuthorizedToModifyBudget,
		)
	}

	// Apply category change
	var category *entity.Category
	if input.CategoryID != nil {
		c, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil || c.UserID != input.UserID {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		budget.CategoryID = c.ID
		category = c
	}

	// Apply period type change
	if input.PeriodType != nil {
		if *input.PeriodType != entity.BudgetPeriodMonthly && *input.PeriodType != entity.BudgetPeriodAnnual {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeInvalidBudgetPeriodType,
				"period type must be 'monthly' or 'annual'",
				domainerror.ErrInvalidBudgetPeriodType,
			)
		}
		budget.PeriodType = *input.PeriodType
	}

	// Apply amount change
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeInvalidBudgetAmount,
				"amount must be greater than zero",
				domainerror.ErrInvalidBudgetAmount,
			)
		}
		budget.Amount = *input.Amount
	}

	// Apply window changes, keeping the window ordered
	if input.StartDate != nil {
		budget.StartDate = valueobject.NormalizeDate(*input.StartDate)
	}
	if input.EndDate != nil {
		budget.EndDate = valueobject.NormalizeDate(*input.EndDate)
	}
	if budget.EndDate.Before(budget.StartDate) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetWindow,
			"end date must not precede the start date",
			domainerror.ErrInvalidBudgetWindow,
		)
	}

	// Re-check the overlap rule against the other budgets
	exists, err := uc.budgetRepo.ExistsOverlapping(
		ctx, budget.ProjectID, budget.CategoryID, budget.PeriodType,
		budget.StartDate, budget.EndDate, &budget.ID,
	)
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

	budget.UpdatedAt = time.Now().UTC()

	// Save changes to database
	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	if category == nil {
		if c, err := uc.categoryRepo.FindByID(ctx, budget.CategoryID); err == nil {
			category = c
		}
	}

	return &UpdateBudgetOutput{Budget: toBudgetOutput(budget, category)}, nil
}
