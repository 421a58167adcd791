// Package project contains project-related use cases.
package project

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// ContractEndDate derives the exclusive contract end from a start date and a
// duration in months, clamping the day to the target month's length
// (2024-01-31 + 1 month ends 2024-02-29).
func ContractEndDate(start time.Time, durationMonths int) time.Time {
	return valueobject.AddMonthsClamped(start, durationMonths)
}

// GeneratePeriods builds the contract periods of a project: one per started
// contract year, contiguous from the start date. The last period is clipped
// to the contract end. Periods carry a 1-based year index offset by
// firstIndex so renewals can extend an existing sequence.
func GeneratePeriods(projectID uuid.UUID, start time.Time, durationMonths int, firstIndex int) []*entity.ContractPeriod {
	if durationMonths <= 0 {
		return nil
	}

	start = valueobject.NormalizeDate(start)
	contractEnd := ContractEndDate(start, durationMonths)

	var periods []*entity.ContractPeriod
	for i := 0; ; i++ {
		periodStart := valueobject.AddMonthsClamped(start, 12*i)
		if !periodStart.Before(contractEnd) {
			break
		}
		periodEnd := valueobject.MinDate(valueobject.AddMonthsClamped(start, 12*(i+1)), contractEnd).AddDate(0, 0, -1)
		periods = append(periods, entity.NewContractPeriod(
			projectID,
			periodStart,
			periodEnd,
			contractYearLabel(periodStart, periodEnd),
			firstIndex+i,
		))
	}
	return periods
}

// CurrentPeriod returns the latest period whose start date is not after the
// reference time. Returns nil when no period has started yet. Periods must be
// ordered by start date.
func CurrentPeriod(periods []*entity.ContractPeriod, ref time.Time) *entity.ContractPeriod {
	ref = valueobject.NormalizeDate(ref)
	var current *entity.ContractPeriod
	for _, p := range periods {
		if p.HasStarted(ref) {
			current = p
		}
	}
	return current
}

// contractYearLabel renders the display label of a period: the calendar year
// when the period stays inside one, the spanned pair otherwise.
func contractYearLabel(start, end time.Time) string {
	if start.Year() == end.Year() {
		return fmt.Sprintf("%d", start.Year())
	}
	return fmt.Sprintf("%d/%d", start.Year(), end.Year())
}
