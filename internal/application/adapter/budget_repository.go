// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/domain/entity"
)

// BudgetFilter defines filter options for listing budgets.
type BudgetFilter struct {
	UserID     uuid.UUID
	ProjectID  *uuid.UUID
	CategoryID *uuid.UUID
	PeriodType *entity.BudgetPeriodType
}

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget in the database.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindByFilter retrieves budgets matching the filter.
	FindByFilter(ctx context.Context, filter BudgetFilter) ([]*entity.Budget, error)

	// ExistsOverlapping checks whether the project already budgets the
	// category with the same period type over a window overlapping start..end,
	// excluding the given ID when non-nil.
	ExistsOverlapping(ctx context.Context, projectID, categoryID uuid.UUID, periodType entity.BudgetPeriodType, start, end time.Time, excludeID *uuid.UUID) (bool, error)

	// Update updates an existing budget in the database.
	Update(ctx context.Context, budget *entity.Budget) error

	// Delete soft-deletes a budget from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByProject hard-deletes all budgets of a project.
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
}
