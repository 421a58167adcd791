// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecurringEndCondition determines when a recurring template stops generating.
type RecurringEndCondition string

const (
	RecurringEndNever       RecurringEndCondition = "never"
	RecurringEndOccurrences RecurringEndCondition = "occurrences"
	RecurringEndUntilDate   RecurringEndCondition = "until_date"
)

// RecurringTemplate generates one transaction per calendar month on the
// configured day. Day 31 in a shorter month clamps to the month's last day.
// Generation is idempotent per (template, YYYY-MM) period.
type RecurringTemplate struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	ProjectID           uuid.UUID
	Type                TransactionType
	Amount              decimal.Decimal
	CategoryID          *uuid.UUID
	SupplierID          *uuid.UUID
	Description         string
	DayOfMonth          int // 1-31
	StartDate           time.Time
	EndCondition        RecurringEndCondition
	OccurrenceLimit     int        // Used when EndCondition == occurrences
	UntilDate           *time.Time // Used when EndCondition == until_date
	OccurrencesCount    int        // Instances generated so far
	LastGeneratedPeriod string     // YYYY-MM of the most recent instance
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           *time.Time // Soft-delete support
}

// NewRecurringTemplate creates a new RecurringTemplate entity.
func NewRecurringTemplate(
	userID uuid.UUID,
	projectID uuid.UUID,
	transactionType TransactionType,
	amount decimal.Decimal,
	categoryID *uuid.UUID,
	supplierID *uuid.UUID,
	description string,
	dayOfMonth int,
	startDate time.Time,
	endCondition RecurringEndCondition,
) *RecurringTemplate {
	now := time.Now().UTC()

	return &RecurringTemplate{
		ID:           uuid.New(),
		UserID:       userID,
		ProjectID:    projectID,
		Type:         transactionType,
		Amount:       amount,
		CategoryID:   categoryID,
		SupplierID:   supplierID,
		Description:  description,
		DayOfMonth:   dayOfMonth,
		StartDate:    startDate,
		EndCondition: endCondition,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// PeriodKey formats a year/month pair as the YYYY-MM period identifier used
// for idempotent generation.
func PeriodKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// ShouldGenerateFor reports whether the template is due to generate an
// instance for the month containing ref.
func (r *RecurringTemplate) ShouldGenerateFor(ref time.Time) bool {
	if !r.IsActive {
		return false
	}
	monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	if r.StartDate.After(monthEnd) {
		return false
	}
	switch r.EndCondition {
	case RecurringEndOccurrences:
		if r.OccurrenceLimit > 0 && r.OccurrencesCount >= r.OccurrenceLimit {
			return false
		}
	case RecurringEndUntilDate:
		if r.UntilDate != nil && r.UntilDate.Before(monthStart) {
			return false
		}
	}
	return true
}

// RecurringTemplateWithRefs represents a template with its resolved references.
type RecurringTemplateWithRefs struct {
	Template *RecurringTemplate
	Category *Category
	Supplier *Supplier
}
