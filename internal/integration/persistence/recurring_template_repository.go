// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/integration/persistence/model"
)

// recurringTemplateRepository implements the adapter.RecurringTemplateRepository interface.
type recurringTemplateRepository struct {
	db *gorm.DB
}

// NewRecurringTemplateRepository creates a new recurring template repository instance.
func NewRecurringTemplateRepository(db *gorm.DB) adapter.RecurringTemplateRepository {
	return &recurringTemplateRepository{
		db: db,
	}
}

// Create creates a new recurring template in the database.
func (r *recurringTemplateRepository) Create(ctx context.Context, template *entity.RecurringTemplate) error {
	templateModel := model.RecurringTemplateFromEntity(template)
	result := r.db.WithContext(ctx).Create(templateModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a recurring template by its ID.
func (r *recurringTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringTemplate, error) {
	var templateModel model.RecurringTemplateModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&templateModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecurringTemplateNotFound
		}
		return nil, result.Error
	}
	return templateModel.ToEntity(), nil
}

// FindByIDWithRefs retrieves a template with category and supplier resolved.
func (r *recurringTemplateRepository) FindByIDWithRefs(ctx context.Context, id uuid.UUID) (*entity.RecurringTemplateWithRefs, error) {
	var templateModel model.RecurringTemplateModel
	result := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Supplier").
		Where("id = ?", id).
		First(&templateModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecurringTemplateNotFound
		}
		return nil, result.Error
	}
	return templateModel.ToEntityWithRefs(), nil
}

// FindByFilter retrieves templates matching the filter, ordered by creation time.
func (r *recurringTemplateRepository) FindByFilter(ctx context.Context, filter adapter.RecurringTemplateFilter) ([]*entity.RecurringTemplateWithRefs, error) {
	query := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Supplier").
		Where("user_id = ?", filter.UserID)

	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var templateModels []model.RecurringTemplateModel
	result := query.Order("created_at asc").Find(&templateModels)
	if result.Error != nil {
		return nil, result.Error
	}

	templates := make([]*entity.RecurringTemplateWithRefs, len(templateModels))
	for i := range templateModels {
		templates[i] = templateModels[i].ToEntityWithRefs()
	}
	return templates, nil
}

// FindAllActive retrieves every active template across users. Used by the
// scheduler's catch-up job.
func (r *recurringTemplateRepository) FindAllActive(ctx context.Context) ([]*entity.RecurringTemplate, error) {
	var templateModels []model.RecurringTemplateModel
	result := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at asc").
		Find(&templateModels)
	if result.Error != nil {
		return nil, result.Error
	}

	templates := make([]*entity.RecurringTemplate, len(templateModels))
	for i := range templateModels {
		templates[i] = templateModels[i].ToEntity()
	}
	return templates, nil
}

// Update updates an existing recurring template in the database.
func (r *recurringTemplateRepository) Update(ctx context.Context, template *entity.RecurringTemplate) error {
	templateModel := model.RecurringTemplateFromEntity(template)
	result := r.db.WithContext(ctx).Save(templateModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete soft-deletes a recurring template from the database.
func (r *recurringTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.RecurringTemplateModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// DeleteByProject hard-deletes all templates of a project.
func (r *recurringTemplateRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Unscoped().
		Where("project_id = ?", projectID).
		Delete(&model.RecurringTemplateModel{})
	return result.Error
}
