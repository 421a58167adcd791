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

// supplierRepository implements the adapter.SupplierRepository interface.
type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository instance.
func NewSupplierRepository(db *gorm.DB) adapter.SupplierRepository {
	return &supplierRepository{
		db: db,
	}
}

// Create creates a new supplier in the database.
func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	supplierModel := model.SupplierFromEntity(supplier)
	result := r.db.WithContext(ctx).Create(supplierModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a supplier by its ID.
func (r *supplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var supplierModel model.SupplierModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&supplierModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSupplierNotFound
		}
		return nil, result.Error
	}
	return supplierModel.ToEntity(), nil
}

// FindByUser retrieves the suppliers of a user ordered by name.
func (r *supplierRepository) FindByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*entity.Supplier, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var supplierModels []model.SupplierModel
	result := query.Order("name asc").Find(&supplierModels)
	if result.Error != nil {
		return nil, result.Error
	}

	suppliers := make([]*entity.Supplier, len(supplierModels))
	for i := range supplierModels {
		suppliers[i] = supplierModels[i].ToEntity()
	}
	return suppliers, nil
}

// Update updates an existing supplier in the database.
func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	supplierModel := model.SupplierFromEntity(supplier)
	result := r.db.WithContext(ctx).Save(supplierModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete soft-deletes a supplier from the database.
func (r *supplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.SupplierModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// CreateDocument attaches a document row to a supplier.
func (r *supplierRepository) CreateDocument(ctx context.Context, doc *entity.SupplierDocument) error {
	documentModel := model.SupplierDocumentFromEntity(doc)
	result := r.db.WithContext(ctx).Create(documentModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindDocuments lists the documents of a supplier.
func (r *supplierRepository) FindDocuments(ctx context.Context, supplierID uuid.UUID) ([]*entity.SupplierDocument, error) {
	var documentModels []model.SupplierDocumentModel
	result := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("uploaded_at asc").
		Find(&documentModels)
	if result.Error != nil {
		return nil, result.Error
	}

	documents := make([]*entity.SupplierDocument, len(documentModels))
	for i := range documentModels {
		documents[i] = documentModels[i].ToEntity()
	}
	return documents, nil
}

// FindDocumentByID retrieves a single supplier document.
func (r *supplierRepository) FindDocumentByID(ctx context.Context, id uuid.UUID) (*entity.SupplierDocument, error) {
	var documentModel model.SupplierDocumentModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&documentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSupplierDocumentNotFound
		}
		return nil, result.Error
	}
	return documentModel.ToEntity(), nil
}
