// Package valueobject contains domain value objects for the Property Ledger system.
package valueobject

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

func TestResolveWindow(t *testing.T) {
	now := date(2024, time.June, 14)

	t.Run("empty mode defaults to current month", func(t *testing.T) {
		w, err := ResolveWindow(WindowSpec{}, nil, nil, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w.Mode != WindowModeCurrentMonth {
			t.Fatalf("expected current_month, got %s", w.Mode)
		}
		if !w.Start.Equal(date(2024, time.June, 1)) || !w.End.Equal(date(2024, time.June, 30)) {
			t.Errorf("expected 2024-06-01..2024-06-30, got %s..%s", w.Start, w.End)
		}
	})

	t.Run("selected month resolves its calendar bounds", func(t *testing.T) {
		w, err := ResolveWindow(WindowSpec{Mode: WindowModeSelectedMonth, Month: "2024-02"}, nil, nil, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !w.Start.Equal(date(2024, time.February, 1)) || !w.End.Equal(date(2024, time.February, 29)) {
			t.Errorf("expected leap February bounds, got %s..%s", w.Start, w.End)
		}
	})

	t.Run("selected month rejects a malformed value", func(t *testing.T) {
		_, err := ResolveWindow(WindowSpec{Mode: WindowModeSelectedMonth, Month: "February"}, nil, nil, now)
		if !errors.Is(err, domainerror.ErrInvalidReportWindow) {
			t.Errorf("expected ErrInvalidReportWindow, got %v", err)
		}
	})

	t.Run("date range uses the explicit bounds", func(t *testing.T) {
		start := date(2024, time.March, 10)
		end := date(2024, time.April, 20)
		w, err := ResolveWindow(WindowSpec{Mode: WindowModeDateRange, Start: &start, End: &end}, nil, nil, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !w.Start.Equal(start) || !w.End.Equal(end) {
			t.Errorf("expected %s..%s, got %s..%s", start, end, w.Start, w.End)
		}
	})

	t.Run("date range requires both bounds", func(t *testing.T) {
		start := date(2024, time.March, 10)
		_, err := ResolveWindow(WindowSpec{Mode: WindowModeDateRange, Start: &start}, nil, nil, now)
		if !errors.Is(err, domainerror.ErrInvalidReportWindow) {
			t.Errorf("expected ErrInvalidReportWindow, got %v", err)
		}
	})

	t.Run("date range rejects inverted bounds", func(t *testing.T) {
		start := date(2024, time.April, 20)
		end := date(2024, time.March, 10)
		_, err := ResolveWindow(WindowSpec{Mode: WindowModeDateRange, Start: &start, End: &end}, nil, nil, now)
		if !errors.Is(err, domainerror.ErrInvalidReportWindow) {
			t.Errorf("expected ErrInvalidReportWindow, got %v", err)
		}
	})

	t.Run("all time runs from the epoch to now", func(t *testing.T) {
		w, err := ResolveWindow(WindowSpec{Mode: WindowModeAllTime}, nil, nil, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !w.Start.Equal(AllTimeEpoch) || !w.End.Equal(now) {
			t.Errorf("expected %s..%s, got %s..%s", AllTimeEpoch, now, w.Start, w.End)
		}
	})

	t.Run("project mode runs from start to the day before the contract end", func(t *testing.T) {
		start := date(2024, time.January, 1)
		end := date(2024, time.June, 1) // exclusive

		w, err := ResolveWindow(WindowSpec{Mode: WindowModeProject}, &start, &end, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !w.Start.Equal(start) || !w.End.Equal(date(2024, time.May, 31)) {
			t.Errorf("expected 2024-01-01..2024-05-31, got %s..%s", w.Start, w.End)
		}
	})

	t.Run("project mode clips the end to now for a live contract", func(t *testing.T) {
		start := date(2024, time.January, 1)
		end := date(2026, time.January, 1)

		w, err := ResolveWindow(WindowSpec{Mode: WindowModeProject}, &start, &end, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !w.End.Equal(now) {
			t.Errorf("expected end %s, got %s", now, w.End)
		}
	})

	t.Run("project mode without a start date covers the trailing year", func(t *testing.T) {
		w, err := ResolveWindow(WindowSpec{Mode: WindowModeProject}, nil, nil, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !w.Start.Equal(date(2023, time.June, 14)) || !w.End.Equal(now) {
			t.Errorf("expected 2023-06-14..%s, got %s..%s", now, w.Start, w.End)
		}
	})

	t.Run("unknown mode is rejected", func(t *testing.T) {
		_, err := ResolveWindow(WindowSpec{Mode: "quarterly"}, nil, nil, now)
		if !errors.Is(err, domainerror.ErrInvalidReportWindow) {
			t.Errorf("expected ErrInvalidReportWindow, got %v", err)
		}
	})
}
