// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/domain/entity"
)

// FundModel represents the funds table in the database. Each project carries
// at most one fund row.
type FundModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProjectID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Balance           decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	MonthlyAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	LastAccruedPeriod string          `gorm:"type:varchar(7)"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`

	Project *ProjectModel `gorm:"foreignKey:ProjectID;references:ID"`
}

// TableName returns the table name for the FundModel.
func (FundModel) TableName() string {
	return "funds"
}

// ToEntity converts a FundModel to a domain Fund entity.
func (m *FundModel) ToEntity() *entity.Fund {
	return &entity.Fund{
		ID:                m.ID,
		ProjectID:         m.ProjectID,
		Balance:           m.Balance,
		MonthlyAmount:     m.MonthlyAmount,
		LastAccruedPeriod: m.LastAccruedPeriod,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// FundFromEntity creates a FundModel from a domain Fund entity.
func FundFromEntity(fund *entity.Fund) *FundModel {
	return &FundModel{
		ID:                fund.ID,
		ProjectID:         fund.ProjectID,
		Balance:           fund.Balance,
		MonthlyAmount:     fund.MonthlyAmount,
		LastAccruedPeriod: fund.LastAccruedPeriod,
		CreatedAt:         fund.CreatedAt,
		UpdatedAt:         fund.UpdatedAt,
	}
}

// FundMovementModel represents the fund_movements table.
type FundMovementModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	FundID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind          string          `gorm:"type:varchar(15);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	OccurredOn    time.Time       `gorm:"type:date;not null;index"`
	TransactionID *uuid.UUID      `gorm:"type:uuid;index"`
	Note          string          `gorm:"type:text"`
	CreatedAt     time.Time       `gorm:"not null"`

	Fund *FundModel `gorm:"foreignKey:FundID;references:ID"`
}

// TableName returns the table name for the FundMovementModel.
func (FundMovementModel) TableName() string {
	return "fund_movements"
}

// ToEntity converts a FundMovementModel to a domain FundMovement entity.
func (m *FundMovementModel) ToEntity() *entity.FundMovement {
	return &entity.FundMovement{
		ID:            m.ID,
		FundID:        m.FundID,
		Kind:          entity.FundMovementKind(m.Kind),
		Amount:        m.Amount,
		OccurredOn:    m.OccurredOn,
		TransactionID: m.TransactionID,
		Note:          m.Note,
		CreatedAt:     m.CreatedAt,
	}
}

// FundMovementFromEntity creates a FundMovementModel from a domain entity.
func FundMovementFromEntity(movement *entity.FundMovement) *FundMovementModel {
	return &FundMovementModel{
		ID:            movement.ID,
		FundID:        movement.FundID,
		Kind:          string(movement.Kind),
		Amount:        movement.Amount,
		OccurredOn:    movement.OccurredOn,
		TransactionID: movement.TransactionID,
		Note:          movement.Note,
		CreatedAt:     movement.CreatedAt,
	}
}
