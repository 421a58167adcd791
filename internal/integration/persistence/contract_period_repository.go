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

// contractPeriodRepository implements the adapter.ContractPeriodRepository interface.
type contractPeriodRepository struct {
	db *gorm.DB
}

// NewContractPeriodRepository creates a new contract period repository instance.
func NewContractPeriodRepository(db *gorm.DB) adapter.ContractPeriodRepository {
	return &contractPeriodRepository{
		db: db,
	}
}

// CreateBatch inserts a set of contract periods.
func (r *contractPeriodRepository) CreateBatch(ctx context.Context, periods []*entity.ContractPeriod) error {
	if len(periods) == 0 {
		return nil
	}

	periodModels := make([]*model.ContractPeriodModel, len(periods))
	for i, period := range periods {
		periodModels[i] = model.ContractPeriodFromEntity(period)
	}

	result := r.db.WithContext(ctx).Create(&periodModels)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a contract period by its ID.
func (r *contractPeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ContractPeriod, error) {
	var periodModel model.ContractPeriodModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&periodModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrContractPeriodNotFound
		}
		return nil, result.Error
	}
	return periodModel.ToEntity(), nil
}

// FindByProject retrieves all periods of a project ordered by start date.
func (r *contractPeriodRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*entity.ContractPeriod, error) {
	var periodModels []model.ContractPeriodModel
	result := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("start_date asc").
		Find(&periodModels)
	if result.Error != nil {
		return nil, result.Error
	}

	periods := make([]*entity.ContractPeriod, len(periodModels))
	for i := range periodModels {
		periods[i] = periodModels[i].ToEntity()
	}
	return periods, nil
}

// DeleteFromIndex removes the periods of a project whose year index is >= the
// given index.
func (r *contractPeriodRepository) DeleteFromIndex(ctx context.Context, projectID uuid.UUID, fromIndex int) error {
	result := r.db.WithContext(ctx).
		Where("project_id = ? AND year_index >= ?", projectID, fromIndex).
		Delete(&model.ContractPeriodModel{})
	return result.Error
}

// DeleteByProject removes all periods of a project.
func (r *contractPeriodRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&model.ContractPeriodModel{})
	return result.Error
}
