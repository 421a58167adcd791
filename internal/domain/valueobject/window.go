// Package valueobject contains domain value objects for the Property Ledger system.
package valueobject

import (
	"fmt"
	"time"

	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// WindowMode identifies how a reporting window was resolved.
type WindowMode string

const (
	WindowModeCurrentMonth  WindowMode = "current_month"
	WindowModeSelectedMonth WindowMode = "selected_month"
	WindowModeDateRange     WindowMode = "date_range"
	WindowModeAllTime       WindowMode = "all_time"
	WindowModeProject       WindowMode = "project"
	WindowModePeriod        WindowMode = "period"
)

// AllTimeEpoch is the fixed lower bound used for all-time windows.
var AllTimeEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Window is an inclusive date range over which financial figures are
// aggregated.
type Window struct {
	Mode  WindowMode
	Start time.Time
	End   time.Time
}

// NewWindow builds a normalized window over start..end.
func NewWindow(mode WindowMode, start, end time.Time) Window {
	return Window{
		Mode:  mode,
		Start: NormalizeDate(start),
		End:   NormalizeDate(end),
	}
}

// Days returns the inclusive day count of the window.
func (w Window) Days() int {
	return DaysInclusive(w.Start, w.End)
}

// Contains reports whether the given date falls inside the window.
func (w Window) Contains(date time.Time) bool {
	d := NormalizeDate(date)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Overlaps reports whether the window shares at least one day with the given
// inclusive range.
func (w Window) Overlaps(start, end time.Time) bool {
	return OverlapDays(w.Start, w.End, start, end) > 0
}

// WindowSpec carries the raw window parameters of a summary or report
// request, before resolution against a project's contract dates.
type WindowSpec struct {
	Mode  WindowMode
	Month string     // YYYY-MM, selected_month only
	Start *time.Time // date_range only
	End   *time.Time // date_range only
}

// ResolveWindow turns a window spec into concrete bounds. An empty mode
// defaults to the current month. Project mode runs from the project start to
// the earlier of (contract end - 1 day) and now; without a start date it
// covers the year leading up to now.
func ResolveWindow(spec WindowSpec, projectStart, projectEnd *time.Time, now time.Time) (Window, error) {
	mode := spec.Mode
	if mode == "" {
		mode = WindowModeCurrentMonth
	}

	switch mode {
	case WindowModeCurrentMonth:
		start, end := MonthBounds(now)
		return NewWindow(WindowModeCurrentMonth, start, end), nil

	case WindowModeSelectedMonth:
		parsed, err := time.Parse("2006-01", spec.Month)
		if err != nil {
			return Window{}, fmt.Errorf("%w: month must be YYYY-MM", domainerror.ErrInvalidReportWindow)
		}
		start, end := MonthBounds(parsed)
		return NewWindow(WindowModeSelectedMonth, start, end), nil

	case WindowModeDateRange:
		if spec.Start == nil || spec.End == nil {
			return Window{}, fmt.Errorf("%w: start_date and end_date are required", domainerror.ErrInvalidReportWindow)
		}
		if NormalizeDate(*spec.End).Before(NormalizeDate(*spec.Start)) {
			return Window{}, fmt.Errorf("%w: end_date precedes start_date", domainerror.ErrInvalidReportWindow)
		}
		return NewWindow(WindowModeDateRange, *spec.Start, *spec.End), nil

	case WindowModeAllTime:
		return NewWindow(WindowModeAllTime, AllTimeEpoch, now), nil

	case WindowModeProject:
		if projectStart == nil {
			return NewWindow(WindowModeProject, now.AddDate(-1, 0, 0), now), nil
		}
		end := NormalizeDate(now)
		if projectEnd != nil {
			// Contract end is exclusive; the last covered day is the day before.
			end = MinDate(NormalizeDate(*projectEnd).AddDate(0, 0, -1), end)
		}
		return NewWindow(WindowModeProject, *projectStart, end), nil
	}

	return Window{}, fmt.Errorf("%w: unknown mode %q", domainerror.ErrInvalidReportWindow, mode)
}
