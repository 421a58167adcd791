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

// fundRepository implements the adapter.FundRepository interface.
type fundRepository struct {
	db *gorm.DB
}

// NewFundRepository creates a new fund repository instance.
func NewFundRepository(db *gorm.DB) adapter.FundRepository {
	return &fundRepository{
		db: db,
	}
}

// Create creates a new fund in the database.
func (r *fundRepository) Create(ctx context.Context, fund *entity.Fund) error {
	fundModel := model.FundFromEntity(fund)
	result := r.db.WithContext(ctx).Create(fundModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByProject retrieves the fund of a project.
func (r *fundRepository) FindByProject(ctx context.Context, projectID uuid.UUID) (*entity.Fund, error) {
	var fundModel model.FundModel
	result := r.db.WithContext(ctx).Where("project_id = ?", projectID).First(&fundModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrFundNotFound
		}
		return nil, result.Error
	}
	return fundModel.ToEntity(), nil
}

// FindAllWithMonthlyAmount retrieves every fund with a positive monthly
// amount whose project still has the fund enabled. Used by the scheduler's
// accrual job.
func (r *fundRepository) FindAllWithMonthlyAmount(ctx context.Context) ([]*entity.Fund, error) {
	var fundModels []model.FundModel
	result := r.db.WithContext(ctx).
		Joins("JOIN projects ON projects.id = funds.project_id").
		Where("funds.monthly_amount > 0 AND projects.has_fund = ? AND projects.deleted_at IS NULL", true).
		Order("funds.created_at asc").
		Find(&fundModels)
	if result.Error != nil {
		return nil, result.Error
	}

	funds := make([]*entity.Fund, len(fundModels))
	for i := range fundModels {
		funds[i] = fundModels[i].ToEntity()
	}
	return funds, nil
}

// Update updates an existing fund in the database.
func (r *fundRepository) Update(ctx context.Context, fund *entity.Fund) error {
	fundModel := model.FundFromEntity(fund)
	result := r.db.WithContext(ctx).Save(fundModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// CreateMovement records a fund movement.
func (r *fundRepository) CreateMovement(ctx context.Context, movement *entity.FundMovement) error {
	movementModel := model.FundMovementFromEntity(movement)
	result := r.db.WithContext(ctx).Create(movementModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindMovements lists the movements of a fund, newest first, paginated.
func (r *fundRepository) FindMovements(ctx context.Context, fundID uuid.UUID, pagination adapter.TransactionPagination) (*entity.FundMovementListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.FundMovementModel{}).
		Where("fund_id = ?", fundID)

	// Get total count
	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	// Calculate pagination
	offset := (pagination.Page - 1) * pagination.Limit
	totalPages := int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	if totalPages == 0 {
		totalPages = 1
	}

	var movementModels []model.FundMovementModel
	result := query.
		Order("occurred_on DESC, created_at DESC").
		Offset(offset).
		Limit(pagination.Limit).
		Find(&movementModels)
	if result.Error != nil {
		return nil, result.Error
	}

	movements := make([]*entity.FundMovement, len(movementModels))
	for i := range movementModels {
		movements[i] = movementModels[i].ToEntity()
	}

	return &entity.FundMovementListResult{
		Movements:  movements,
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
	}, nil
}

// DeleteByProject hard-deletes the fund of a project and its movements.
func (r *fundRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("fund_id IN (?)",
				tx.Model(&model.FundModel{}).Select("id").Where("project_id = ?", projectID),
			).
			Delete(&model.FundMovementModel{}).Error; err != nil {
			return err
		}
		return tx.Where("project_id = ?", projectID).Delete(&model.FundModel{}).Error
	})
}
