// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByUser retrieves the categories of a user ordered by name. When
	// activeOnly is true inactive categories are skipped.
	FindByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*entity.Category, error)

	// FindOtherByUser retrieves the user's seeded fallback category.
	FindOtherByUser(ctx context.Context, userID uuid.UUID) (*entity.Category, error)

	// ExistsByNameAndUser checks if a category with the given name exists for
	// the user (case-insensitive), excluding the given ID when non-nil.
	ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID, excludeID *uuid.UUID) (bool, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error

	// Delete soft-deletes a category from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
