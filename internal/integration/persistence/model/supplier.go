// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/property-ledger/backend/internal/domain/entity"
)

// SupplierModel represents the suppliers table in the database.
type SupplierModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name      string         `gorm:"type:varchar(100);not null"`
	Email     string         `gorm:"type:varchar(255)"`
	Phone     string         `gorm:"type:varchar(50)"`
	TaxID     string         `gorm:"type:varchar(50)"`
	Notes     string         `gorm:"type:text"`
	IsActive  bool           `gorm:"default:true"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the SupplierModel.
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToEntity converts a SupplierModel to a domain Supplier entity.
func (m *SupplierModel) ToEntity() *entity.Supplier {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Supplier{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		TaxID:     m.TaxID,
		Notes:     m.Notes,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: deletedAt,
	}
}

// SupplierFromEntity creates a SupplierModel from a domain Supplier entity.
func SupplierFromEntity(supplier *entity.Supplier) *SupplierModel {
	var deletedAt gorm.DeletedAt
	if supplier.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *supplier.DeletedAt, Valid: true}
	}

	return &SupplierModel{
		ID:        supplier.ID,
		UserID:    supplier.UserID,
		Name:      supplier.Name,
		Email:     supplier.Email,
		Phone:     supplier.Phone,
		TaxID:     supplier.TaxID,
		Notes:     supplier.Notes,
		IsActive:  supplier.IsActive,
		CreatedAt: supplier.CreatedAt,
		UpdatedAt: supplier.UpdatedAt,
		DeletedAt: deletedAt,
	}
}

// SupplierDocumentModel represents the supplier_documents table.
type SupplierDocumentModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SupplierID  uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName    string    `gorm:"type:varchar(255);not null"`
	StorageKey  string    `gorm:"type:varchar(500);not null"`
	ContentType string    `gorm:"type:varchar(100)"`
	SizeBytes   int64     `gorm:"not null;default:0"`
	UploadedAt  time.Time `gorm:"not null"`

	Supplier *SupplierModel `gorm:"foreignKey:SupplierID;references:ID"`
}

// TableName returns the table name for the SupplierDocumentModel.
func (SupplierDocumentModel) TableName() string {
	return "supplier_documents"
}

// ToEntity converts a SupplierDocumentModel to a domain SupplierDocument entity.
func (m *SupplierDocumentModel) ToEntity() *entity.SupplierDocument {
	return &entity.SupplierDocument{
		ID:          m.ID,
		SupplierID:  m.SupplierID,
		FileName:    m.FileName,
		StorageKey:  m.StorageKey,
		ContentType: m.ContentType,
		SizeBytes:   m.SizeBytes,
		UploadedAt:  m.UploadedAt,
	}
}

// SupplierDocumentFromEntity creates a SupplierDocumentModel from a domain entity.
func SupplierDocumentFromEntity(doc *entity.SupplierDocument) *SupplierDocumentModel {
	return &SupplierDocumentModel{
		ID:          doc.ID,
		SupplierID:  doc.SupplierID,
		FileName:    doc.FileName,
		StorageKey:  doc.StorageKey,
		ContentType: doc.ContentType,
		SizeBytes:   doc.SizeBytes,
		UploadedAt:  doc.UploadedAt,
	}
}
