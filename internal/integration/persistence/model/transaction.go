// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/property-ledger/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database. Either
// TxDate or the PeriodStart/PeriodEnd pair is set, never both. The unique
// index over (recurring_template_id, generated_period) makes monthly
// generation idempotent even across concurrent runs.
type TransactionModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProjectID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type                string          `gorm:"type:varchar(10);not null;index"`
	Amount              decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TxDate              *time.Time      `gorm:"type:date;index"`
	PeriodStart         *time.Time      `gorm:"type:date"`
	PeriodEnd           *time.Time      `gorm:"type:date"`
	CategoryID          *uuid.UUID      `gorm:"type:uuid;index"`
	SupplierID          *uuid.UUID      `gorm:"type:uuid;index"`
	IsExceptional       bool            `gorm:"default:false"`
	FromFund            bool            `gorm:"default:false"`
	RecurringTemplateID *uuid.UUID      `gorm:"type:uuid;index;uniqueIndex:ux_transactions_template_period"`
	GeneratedPeriod     *string         `gorm:"type:varchar(7);uniqueIndex:ux_transactions_template_period"`
	GroupID             *uuid.UUID      `gorm:"type:uuid;index"`
	Notes               string          `gorm:"type:text"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null"`
	DeletedAt           gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	// Relationships (not loaded by default, use Preload)
	Project  *ProjectModel  `gorm:"foreignKey:ProjectID;references:ID"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	Supplier *SupplierModel `gorm:"foreignKey:SupplierID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Transaction{
		ID:                  m.ID,
		UserID:              m.UserID,
		ProjectID:           m.ProjectID,
		Type:                entity.TransactionType(m.Type),
		Amount:              m.Amount,
		TxDate:              m.TxDate,
		PeriodStart:         m.PeriodStart,
		PeriodEnd:           m.PeriodEnd,
		CategoryID:          m.CategoryID,
		SupplierID:          m.SupplierID,
		IsExceptional:       m.IsExceptional,
		FromFund:            m.FromFund,
		RecurringTemplateID: m.RecurringTemplateID,
		GeneratedPeriod:     m.GeneratedPeriod,
		GroupID:             m.GroupID,
		Notes:               m.Notes,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
		DeletedAt:           deletedAt,
	}
}

// ToEntityWithRefs converts the model and its preloaded references.
func (m *TransactionModel) ToEntityWithRefs() *entity.TransactionWithRefs {
	withRefs := &entity.TransactionWithRefs{
		Transaction: m.ToEntity(),
	}
	if m.Category != nil {
		withRefs.Category = m.Category.ToEntity()
	}
	if m.Supplier != nil {
		withRefs.Supplier = m.Supplier.ToEntity()
	}
	return withRefs
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	var deletedAt gorm.DeletedAt
	if transaction.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *transaction.DeletedAt, Valid: true}
	}

	return &TransactionModel{
		ID:                  transaction.ID,
		UserID:              transaction.UserID,
		ProjectID:           transaction.ProjectID,
		Type:                string(transaction.Type),
		Amount:              transaction.Amount,
		TxDate:              transaction.TxDate,
		PeriodStart:         transaction.PeriodStart,
		PeriodEnd:           transaction.PeriodEnd,
		CategoryID:          transaction.CategoryID,
		SupplierID:          transaction.SupplierID,
		IsExceptional:       transaction.IsExceptional,
		FromFund:            transaction.FromFund,
		RecurringTemplateID: transaction.RecurringTemplateID,
		GeneratedPeriod:     transaction.GeneratedPeriod,
		GroupID:             transaction.GroupID,
		Notes:               transaction.Notes,
		CreatedAt:           transaction.CreatedAt,
		UpdatedAt:           transaction.UpdatedAt,
		DeletedAt:           deletedAt,
	}
}

// TransactionDocumentModel represents the transaction_documents table.
type TransactionDocumentModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName      string    `gorm:"type:varchar(255);not null"`
	StorageKey    string    `gorm:"type:varchar(500);not null"`
	ContentType   string    `gorm:"type:varchar(100)"`
	SizeBytes     int64     `gorm:"not null;default:0"`
	UploadedAt    time.Time `gorm:"not null"`

	Transaction *TransactionModel `gorm:"foreignKey:TransactionID;references:ID"`
}

// TableName returns the table name for the TransactionDocumentModel.
func (TransactionDocumentModel) TableName() string {
	return "transaction_documents"
}

// ToEntity converts a TransactionDocumentModel to a domain TransactionDocument entity.
func (m *TransactionDocumentModel) ToEntity() *entity.TransactionDocument {
	return &entity.TransactionDocument{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		FileName:      m.FileName,
		StorageKey:    m.StorageKey,
		ContentType:   m.ContentType,
		SizeBytes:     m.SizeBytes,
		UploadedAt:    m.UploadedAt,
	}
}

// TransactionDocumentFromEntity creates a TransactionDocumentModel from a domain entity.
func TransactionDocumentFromEntity(doc *entity.TransactionDocument) *TransactionDocumentModel {
	return &TransactionDocumentModel{
		ID:            doc.ID,
		TransactionID: doc.TransactionID,
		FileName:      doc.FileName,
		StorageKey:    doc.StorageKey,
		ContentType:   doc.ContentType,
		SizeBytes:     doc.SizeBytes,
		UploadedAt:    doc.UploadedAt,
	}
}
