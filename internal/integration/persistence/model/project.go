// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/property-ledger/backend/internal/domain/entity"
)

// ProjectModel represents the projects table in the database.
type ProjectModel struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID                 uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name                   string          `gorm:"type:varchar(100);not null"`
	Description            string          `gorm:"type:text"`
	ParentID               *uuid.UUID      `gorm:"type:uuid;index"`
	IsParent               bool            `gorm:"default:false"`
	MonthlyBudget          decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	AnnualBudget           decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	StartDate              *time.Time      `gorm:"type:date"`
	EndDate                *time.Time      `gorm:"type:date"`
	ContractDurationMonths int             `gorm:"not null;default:0"`
	HasFund                bool            `gorm:"default:false"`
	MonthlyFundAmount      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	ImageURL               string          `gorm:"type:varchar(500)"`
	ContractURL            string          `gorm:"type:varchar(500)"`
	ArchivedAt             *time.Time      `gorm:"type:timestamptz;index"`
	CreatedAt              time.Time       `gorm:"not null"`
	UpdatedAt              time.Time       `gorm:"not null"`
	DeletedAt              gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	// Relationships (not loaded by default, use Preload)
	Parent *ProjectModel `gorm:"foreignKey:ParentID;references:ID"`
	User   *UserModel    `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the ProjectModel.
func (ProjectModel) TableName() string {
	return "projects"
}

// ToEntity converts a ProjectModel to a domain Project entity.
func (m *ProjectModel) ToEntity() *entity.Project {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Project{
		ID:                     m.ID,
		UserID:                 m.UserID,
		Name:                   m.Name,
		Description:            m.Description,
		ParentID:               m.ParentID,
		IsParent:               m.IsParent,
		MonthlyBudget:          m.MonthlyBudget,
		AnnualBudget:           m.AnnualBudget,
		StartDate:              m.StartDate,
		EndDate:                m.EndDate,
		ContractDurationMonths: m.ContractDurationMonths,
		HasFund:                m.HasFund,
		MonthlyFundAmount:      m.MonthlyFundAmount,
		ImageURL:               m.ImageURL,
		ContractURL:            m.ContractURL,
		ArchivedAt:             m.ArchivedAt,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
		DeletedAt:              deletedAt,
	}
}

// ProjectFromEntity creates a ProjectModel from a domain Project entity.
func ProjectFromEntity(project *entity.Project) *ProjectModel {
	var deletedAt gorm.DeletedAt
	if project.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *project.DeletedAt, Valid: true}
	}

	return &ProjectModel{
		ID:                     project.ID,
		UserID:                 project.UserID,
		Name:                   project.Name,
		Description:            project.Description,
		ParentID:               project.ParentID,
		IsParent:               project.IsParent,
		MonthlyBudget:          project.MonthlyBudget,
		AnnualBudget:           project.AnnualBudget,
		StartDate:              project.StartDate,
		EndDate:                project.EndDate,
		ContractDurationMonths: project.ContractDurationMonths,
		HasFund:                project.HasFund,
		MonthlyFundAmount:      project.MonthlyFundAmount,
		ImageURL:               project.ImageURL,
		ContractURL:            project.ContractURL,
		ArchivedAt:             project.ArchivedAt,
		CreatedAt:              project.CreatedAt,
		UpdatedAt:              project.UpdatedAt,
		DeletedAt:              deletedAt,
	}
}

// ContractPeriodModel represents the contract_periods table in the database.
type ContractPeriodModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID    uuid.UUID `gorm:"type:uuid;not null;index"`
	StartDate    time.Time `gorm:"type:date;not null;index"`
	EndDate      time.Time `gorm:"type:date;not null"`
	ContractYear string    `gorm:"type:varchar(20);not null"`
	YearIndex    int       `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`

	Project *ProjectModel `gorm:"foreignKey:ProjectID;references:ID"`
}

// TableName returns the table name for the ContractPeriodModel.
func (ContractPeriodModel) TableName() string {
	return "contract_periods"
}

// ToEntity converts a ContractPeriodModel to a domain ContractPeriod entity.
func (m *ContractPeriodModel) ToEntity() *entity.ContractPeriod {
	return &entity.ContractPeriod{
		ID:           m.ID,
		ProjectID:    m.ProjectID,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		ContractYear: m.ContractYear,
		YearIndex:    m.YearIndex,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ContractPeriodFromEntity creates a ContractPeriodModel from a domain ContractPeriod entity.
func ContractPeriodFromEntity(period *entity.ContractPeriod) *ContractPeriodModel {
	return &ContractPeriodModel{
		ID:           period.ID,
		ProjectID:    period.ProjectID,
		StartDate:    period.StartDate,
		EndDate:      period.EndDate,
		ContractYear: period.ContractYear,
		YearIndex:    period.YearIndex,
		CreatedAt:    period.CreatedAt,
		UpdatedAt:    period.UpdatedAt,
	}
}
