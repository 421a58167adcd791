// Package valueobject contains domain value objects for the Property Ledger system.
package valueobject

import "time"

// NormalizeDate truncates a time to midnight UTC. All date-valued fields in
// the domain are stored normalized so day arithmetic is exact.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// AddMonthsClamped adds months to a date, clamping the day to the target
// month's length instead of normalizing past it: 2024-01-31 + 1 month is
// 2024-02-29, not 2024-03-02.
func AddMonthsClamped(t time.Time, months int) time.Time {
	t = NormalizeDate(t)
	// Walk from the first of the month so AddDate cannot spill over.
	anchor := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	day := t.Day()
	if max := DaysInMonth(anchor.Year(), anchor.Month()); day > max {
		day = max
	}
	return time.Date(anchor.Year(), anchor.Month(), day, 0, 0, 0, 0, time.UTC)
}

// DaysInclusive counts the days from start to end, both ends included. A
// single-day span counts as 1. Returns 0 when end precedes start.
func DaysInclusive(start, end time.Time) int {
	start = NormalizeDate(start)
	end = NormalizeDate(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// OverlapDays counts the days shared by two inclusive date ranges. Disjoint
// ranges yield 0.
func OverlapDays(aStart, aEnd, bStart, bEnd time.Time) int {
	start := NormalizeDate(aStart)
	if b := NormalizeDate(bStart); b.After(start) {
		start = b
	}
	end := NormalizeDate(aEnd)
	if b := NormalizeDate(bEnd); b.Before(end) {
		end = b
	}
	return DaysInclusive(start, end)
}

// MonthBounds returns the first and last day of the month containing t.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

// MaxDate returns the later of two times.
func MaxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// MinDate returns the earlier of two times.
func MinDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
