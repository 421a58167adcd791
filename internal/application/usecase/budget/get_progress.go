package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
)

// GetProgressInput represents the input for computing budget progress.
type GetProgressInput struct {
	BudgetID uuid.UUID
	UserID   uuid.UUID
}

// GetProgressOutput represents the output of computing budget progress.
type GetProgressOutput struct {
	Progress *entity.BudgetProgress
}

// GetProgressUseCase computes a budget's spending progress: pro-rated
// expenses of the category inside the budget window, against the expected
// spend by elapsed time.
type GetProgressUseCase struct {
	budgetRepo      adapter.BudgetRepository
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
}

// NewGetProgressUseCase creates a new GetProgressUseCase instance.
func NewGetProgressUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
) *GetProgressUseCase {
	return &GetProgressUseCase{
		budgetRepo:      budgetRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute computes the budget's progress at the current time.
func (uc *GetProgressUseCase) Execute(ctx context.Context, input GetProgressInput) (*GetProgressOutput, error) {
	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.BudgetID, input.UserID)
	if err != nil {
		return nil, err
	}

	var category *entity.Category
	if c, err := uc.categoryRepo.FindByID(ctx, budget.CategoryID); err == nil {
		category = c
	}

	now := time.Now().UTC()
	windowStart, windowEnd := budget.WindowFor(now)
	transactions, err := uc.transactionRepo.FindOverlappingWindow(
		ctx, []uuid.UUID{budget.ProjectID}, windowStart, windowEnd,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	return &GetProgressOutput{
		Progress: budget.ProgressFor(category, transactions, now),
	}, nil
}
