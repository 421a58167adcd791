package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
)

// ListBudgetsInput represents the input for listing budgets.
type ListBudgetsInput struct {
	UserID     uuid.UUID
	ProjectID  *uuid.UUID
	CategoryID *uuid.UUID
	PeriodType *entity.BudgetPeriodType
}

// BudgetOutput represents a single budget in the output.
type BudgetOutput struct {
	ID         uuid.UUID
	ProjectID  uuid.UUID
	CategoryID uuid.UUID
	Category   *CategoryOutput
	PeriodType entity.BudgetPeriodType
	Amount     decimal.Decimal
	StartDate  time.Time
	EndDate    time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CategoryOutput represents category information in budget output.
type CategoryOutput struct {
	ID      uuid.UUID
	Name    string
	Type    entity.CategoryType
	IsOther bool
}

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Budgets []*BudgetOutput
}

// ListBudgetsUseCase handles listing budgets logic.
type ListBudgetsUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the budget listing.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	budgets, err := uc.budgetRepo.FindByFilter(ctx, adapter.BudgetFilter{
		UserID:     input.UserID,
		ProjectID:  input.ProjectID,
		CategoryID: input.CategoryID,
		PeriodType: input.PeriodType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	// Resolve categories in one pass
	categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	byID := make(map[uuid.UUID]*entity.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	output := &ListBudgetsOutput{Budgets: make([]*BudgetOutput, 0, len(budgets))}
	for _, b := range budgets {
		output.Budgets = append(output.Budgets, toBudgetOutput(b, byID[b.CategoryID]))
	}

	return output, nil
}

// toBudgetOutput maps a budget entity and its category to the output
// representation shared by the package's use cases.
func toBudgetOutput(budget *entity.Budget, category *entity.Category) *BudgetOutput {
	output := &BudgetOutput{
		ID:         budget.ID,
		ProjectID:  budget.ProjectID,
		CategoryID: budget.CategoryID,
		PeriodType: budget.PeriodType,
		Amount:     budget.Amount,
		StartDate:  budget.StartDate,
		EndDate:    budget.EndDate,
		CreatedAt:  budget.CreatedAt,
		UpdatedAt:  budget.UpdatedAt,
	}
	if category != nil {
		output.Category = &CategoryOutput{
			ID:      category.ID,
			Name:    category.Name,
			Type:    category.Type,
			IsOther: category.IsOther,
		}
	}
	return output
}
