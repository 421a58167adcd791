// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Project represents a managed property or venture whose finances are tracked.
// A project may be a parent grouping sub-projects (ParentID set on the child),
// carries an optional contract window (StartDate..EndDate derived from the
// contract duration) and may maintain a monthly cash fund.
type Project struct {
	ID                     uuid.UUID
	UserID                 uuid.UUID
	Name                   string
	Description            string
	ParentID               *uuid.UUID // Set on sub-projects
	IsParent               bool
	MonthlyBudget          decimal.Decimal // Expected monthly income
	AnnualBudget           decimal.Decimal
	StartDate              *time.Time
	EndDate                *time.Time // Derived: start + contract duration, month-clamped
	ContractDurationMonths int
	HasFund                bool
	MonthlyFundAmount      decimal.Decimal
	ImageURL               string
	ContractURL            string
	ArchivedAt             *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
	DeletedAt              *time.Time // Soft-delete support
}

// NewProject creates a new Project entity. End date and contract periods are
// derived in the application layer from StartDate and ContractDurationMonths.
func NewProject(
	userID uuid.UUID,
	name string,
	description string,
	parentID *uuid.UUID,
	isParent bool,
	monthlyBudget decimal.Decimal,
	annualBudget decimal.Decimal,
	startDate *time.Time,
	contractDurationMonths int,
) *Project {
	now := time.Now().UTC()

	return &Project{
		ID:                     uuid.New(),
		UserID:                 userID,
		Name:                   name,
		Description:            description,
		ParentID:               parentID,
		IsParent:               isParent,
		MonthlyBudget:          monthlyBudget,
		AnnualBudget:           annualBudget,
		StartDate:              startDate,
		ContractDurationMonths: contractDurationMonths,
		MonthlyFundAmount:      decimal.Zero,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

// IsSubProject returns true when the project belongs to a parent project.
func (p *Project) IsSubProject() bool {
	return p.ParentID != nil
}

// IsArchived returns true when the project has been archived.
func (p *Project) IsArchived() bool {
	return p.ArchivedAt != nil
}

// Archive marks the project as archived. Archived projects are excluded from
// default listings but keep all of their financial history.
func (p *Project) Archive() {
	now := time.Now().UTC()
	p.ArchivedAt = &now
	p.UpdatedAt = now
}

// Unarchive clears the archived flag.
func (p *Project) Unarchive() {
	p.ArchivedAt = nil
	p.UpdatedAt = time.Now().UTC()
}

// ProjectListResult represents the result of listing projects.
type ProjectListResult struct {
	Projects   []*Project
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}
