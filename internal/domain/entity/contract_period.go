// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ContractPeriod represents one contract year of a project. Periods are
// generated contiguously from the project start date and ordered by start
// date; the current period is the latest one whose start is not after today.
type ContractPeriod struct {
	ID           uuid.UUID
	ProjectID    uuid.UUID
	StartDate    time.Time
	EndDate      time.Time
	ContractYear string // Display label, e.g. "2024/2025"
	YearIndex    int    // 1-based position within the contract
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewContractPeriod creates a new ContractPeriod entity.
func NewContractPeriod(projectID uuid.UUID, startDate, endDate time.Time, contractYear string, yearIndex int) *ContractPeriod {
	now := time.Now().UTC()

	return &ContractPeriod{
		ID:           uuid.New(),
		ProjectID:    projectID,
		StartDate:    startDate,
		EndDate:      endDate,
		ContractYear: contractYear,
		YearIndex:    yearIndex,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Contains reports whether the given date falls inside the period (inclusive).
func (c *ContractPeriod) Contains(date time.Time) bool {
	return !date.Before(c.StartDate) && !date.After(c.EndDate)
}

// HasStarted reports whether the period's start date is on or before the
// given reference time.
func (c *ContractPeriod) HasStarted(ref time.Time) bool {
	return !c.StartDate.After(ref)
}
