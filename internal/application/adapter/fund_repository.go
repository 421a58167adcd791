// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/domain/entity"
)

// FundRepository defines the interface for fund persistence operations.
type FundRepository interface {
	// Create creates a new fund in the database.
	Create(ctx context.Context, fund *entity.Fund) error

	// FindByProject retrieves the fund of a project.
	FindByProject(ctx context.Context, projectID uuid.UUID) (*entity.Fund, error)

	// FindAllWithMonthlyAmount retrieves every fund with a positive monthly
	// amount whose project still has the fund enabled. Used by the
	// scheduler's accrual job.
	FindAllWithMonthlyAmount(ctx context.Context) ([]*entity.Fund, error)

	// Update updates an existing fund in the database.
	Update(ctx context.Context, fund *entity.Fund) error

	// CreateMovement records a fund movement.
	CreateMovement(ctx context.Context, movement *entity.FundMovement) error

	// FindMovements lists the movements of a fund, newest first, paginated.
	FindMovements(ctx context.Context, fundID uuid.UUID, pagination TransactionPagination) (*entity.FundMovementListResult, error)

	// DeleteByProject hard-deletes the fund of a project and its movements.
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
}
