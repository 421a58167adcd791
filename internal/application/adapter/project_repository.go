// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/domain/entity"
)

// ProjectFilter defines filter options for listing projects.
type ProjectFilter struct {
	UserID          uuid.UUID
	IncludeArchived bool
	ParentsOnly     bool
	ParentID        *uuid.UUID // Restrict to sub-projects of one parent
	Search          string     // Case-insensitive name match
}

// ProjectRepository defines the interface for project persistence operations.
type ProjectRepository interface {
	// Create creates a new project in the database.
	Create(ctx context.Context, project *entity.Project) error

	// FindByID retrieves a project by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error)

	// FindByFilter retrieves projects matching the filter, ordered by name.
	FindByFilter(ctx context.Context, filter ProjectFilter) ([]*entity.Project, error)

	// FindSubProjects retrieves the sub-projects of a parent project.
	FindSubProjects(ctx context.Context, parentID uuid.UUID) ([]*entity.Project, error)

	// ExistsByNameAndUser checks whether the user already has a project with
	// the given name (case-insensitive), excluding the given ID when non-nil.
	ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID, excludeID *uuid.UUID) (bool, error)

	// Update updates an existing project in the database.
	Update(ctx context.Context, project *entity.Project) error

	// Delete hard-deletes a project row. Callers cascade to the project's
	// dependents (periods, transactions, budgets, fund, templates) first.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContractPeriodRepository defines the interface for contract period persistence operations.
type ContractPeriodRepository interface {
	// CreateBatch inserts a set of contract periods.
	CreateBatch(ctx context.Context, periods []*entity.ContractPeriod) error

	// FindByID retrieves a contract period by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ContractPeriod, error)

	// FindByProject retrieves all periods of a project ordered by start date.
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]*entity.ContractPeriod, error)

	// DeleteFromIndex removes the periods of a project whose year index is >=
	// the given index. Used when a renewal regenerates the tail of the contract.
	DeleteFromIndex(ctx context.Context, projectID uuid.UUID, fromIndex int) error

	// DeleteByProject removes all periods of a project.
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
}
