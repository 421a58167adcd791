// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/domain/entity"
)

// RecurringTemplateFilter defines filter options for listing recurring templates.
type RecurringTemplateFilter struct {
	UserID     uuid.UUID
	ProjectID  *uuid.UUID
	ActiveOnly bool
}

// RecurringTemplateRepository defines the interface for recurring template persistence operations.
type RecurringTemplateRepository interface {
	// Create creates a new recurring template in the database.
	Create(ctx context.Context, template *entity.RecurringTemplate) error

	// FindByID retrieves a recurring template by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringTemplate, error)

	// FindByIDWithRefs retrieves a template with category and supplier resolved.
	FindByIDWithRefs(ctx context.Context, id uuid.UUID) (*entity.RecurringTemplateWithRefs, error)

	// FindByFilter retrieves templates matching the filter, ordered by creation time.
	FindByFilter(ctx context.Context, filter RecurringTemplateFilter) ([]*entity.RecurringTemplateWithRefs, error)

	// FindAllActive retrieves every active template across users. Used by the
	// scheduler's catch-up job.
	FindAllActive(ctx context.Context) ([]*entity.RecurringTemplate, error)

	// Update updates an existing recurring template in the database.
	Update(ctx context.Context, template *entity.RecurringTemplate) error

	// Delete soft-deletes a recurring template from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByProject hard-deletes all templates of a project.
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
}
