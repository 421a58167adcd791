// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/property-ledger/backend/internal/domain/entity"
)

// RecurringTemplateModel represents the recurring_templates table.
type RecurringTemplateModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProjectID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type                string          `gorm:"type:varchar(10);not null"`
	Amount              decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CategoryID          *uuid.UUID      `gorm:"type:uuid;index"`
	SupplierID          *uuid.UUID      `gorm:"type:uuid;index"`
	Description         string          `gorm:"type:text"`
	DayOfMonth          int             `gorm:"not null"`
	StartDate           time.Time       `gorm:"type:date;not null"`
	EndCondition        string          `gorm:"type:varchar(15);not null;default:'never'"`
	OccurrenceLimit     int             `gorm:"not null;default:0"`
	UntilDate           *time.Time      `gorm:"type:date"`
	OccurrencesCount    int             `gorm:"not null;default:0"`
	LastGeneratedPeriod string          `gorm:"type:varchar(7)"`
	IsActive            bool            `gorm:"default:true"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null"`
	DeletedAt           gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	// Relationships - not loaded by default, use Preload to fetch
	Project  *ProjectModel  `gorm:"foreignKey:ProjectID;references:ID"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	Supplier *SupplierModel `gorm:"foreignKey:SupplierID;references:ID"`
}

// TableName returns the table name for the RecurringTemplateModel.
func (RecurringTemplateModel) TableName() string {
	return "recurring_templates"
}

// ToEntity converts a RecurringTemplateModel to a domain RecurringTemplate entity.
func (m *RecurringTemplateModel) ToEntity() *entity.RecurringTemplate {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.RecurringTemplate{
		ID:                  m.ID,
		UserID:              m.UserID,
		ProjectID:           m.ProjectID,
		Type:                entity.TransactionType(m.Type),
		Amount:              m.Amount,
		CategoryID:          m.CategoryID,
		SupplierID:          m.SupplierID,
		Description:         m.Description,
		DayOfMonth:          m.DayOfMonth,
		StartDate:           m.StartDate,
		EndCondition:        entity.RecurringEndCondition(m.EndCondition),
		OccurrenceLimit:     m.OccurrenceLimit,
		UntilDate:           m.UntilDate,
		OccurrencesCount:    m.OccurrencesCount,
		LastGeneratedPeriod: m.LastGeneratedPeriod,
		IsActive:            m.IsActive,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
		DeletedAt:           deletedAt,
	}
}

// ToEntityWithRefs converts the model with its preloaded category and supplier.
func (m *RecurringTemplateModel) ToEntityWithRefs() *entity.RecurringTemplateWithRefs {
	withRefs := &entity.RecurringTemplateWithRefs{
		Template: m.ToEntity(),
	}
	if m.Category != nil {
		withRefs.Category = m.Category.ToEntity()
	}
	if m.Supplier != nil {
		withRefs.Supplier = m.Supplier.ToEntity()
	}

	return withRefs
}

// RecurringTemplateFromEntity creates a RecurringTemplateModel from a domain entity.
func RecurringTemplateFromEntity(template *entity.RecurringTemplate) *RecurringTemplateModel {
	var deletedAt gorm.DeletedAt
	if template.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *template.DeletedAt, Valid: true}
	}

	return &RecurringTemplateModel{
		ID:                  template.ID,
		UserID:              template.UserID,
		ProjectID:           template.ProjectID,
		Type:                string(template.Type),
		Amount:              template.Amount,
		CategoryID:          template.CategoryID,
		SupplierID:          template.SupplierID,
		Description:         template.Description,
		DayOfMonth:          template.DayOfMonth,
		StartDate:           template.StartDate,
		EndCondition:        string(template.EndCondition),
		OccurrenceLimit:     template.OccurrenceLimit,
		UntilDate:           template.UntilDate,
		OccurrencesCount:    template.OccurrencesCount,
		LastGeneratedPeriod: template.LastGeneratedPeriod,
		IsActive:            template.IsActive,
		CreatedAt:           template.CreatedAt,
		UpdatedAt:           template.UpdatedAt,
		DeletedAt:           deletedAt,
	}
}
