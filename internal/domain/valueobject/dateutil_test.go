// Package valueobject contains domain value objects for the Property Ledger system.
package valueobject

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{"jan 31 plus one month clamps to feb 29 in leap year", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"jan 31 plus one month clamps to feb 28 otherwise", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"mar 31 plus one month clamps to apr 30", date(2024, time.March, 31), 1, date(2024, time.April, 30)},
		{"mid-month day is unchanged", date(2024, time.March, 15), 1, date(2024, time.April, 15)},
		{"twelve months spans a year", date(2024, time.February, 29), 12, date(2025, time.February, 28)},
		{"zero months is identity", date(2024, time.June, 10), 0, date(2024, time.June, 10)},
		{"crosses year boundary", date(2024, time.November, 30), 3, date(2025, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonthsClamped(tt.start, tt.months)
			if !got.Equal(tt.want) {
				t.Errorf("AddMonthsClamped(%v, %d) = %v, want %v", tt.start, tt.months, got, tt.want)
			}
		})
	}
}

func TestDaysInclusive(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"single day counts as one", date(2024, time.May, 10), date(2024, time.May, 10), 1},
		{"full january", date(2024, time.January, 1), date(2024, time.January, 31), 31},
		{"leap-year quarter", date(2024, time.January, 1), date(2024, time.March, 31), 91},
		{"non-leap quarter", date(2023, time.January, 1), date(2023, time.March, 31), 90},
		{"end before start is zero", date(2024, time.May, 10), date(2024, time.May, 9), 0},
		{"ignores time of day", time.Date(2024, time.May, 1, 23, 59, 0, 0, time.UTC), time.Date(2024, time.May, 2, 0, 1, 0, 0, time.UTC), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysInclusive(tt.start, tt.end); got != tt.want {
				t.Errorf("DaysInclusive(%v, %v) = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestOverlapDays(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           int
	}{
		{
			"february window inside quarter",
			date(2024, time.January, 1), date(2024, time.March, 31),
			date(2024, time.February, 1), date(2024, time.February, 29),
			29,
		},
		{
			"disjoint ranges yield zero",
			date(2024, time.January, 1), date(2024, time.January, 31),
			date(2024, time.March, 1), date(2024, time.March, 31),
			0,
		},
		{
			"touching at a single day",
			date(2024, time.January, 1), date(2024, time.February, 1),
			date(2024, time.February, 1), date(2024, time.February, 29),
			1,
		},
		{
			"identical ranges",
			date(2024, time.April, 1), date(2024, time.April, 30),
			date(2024, time.April, 1), date(2024, time.April, 30),
			30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverlapDays(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("OverlapDays = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	if got := DaysInMonth(2024, time.February); got != 29 {
		t.Errorf("expected 29 days in Feb 2024, got %d", got)
	}
	if got := DaysInMonth(2023, time.February); got != 28 {
		t.Errorf("expected 28 days in Feb 2023, got %d", got)
	}
	if got := DaysInMonth(2024, time.April); got != 30 {
		t.Errorf("expected 30 days in Apr 2024, got %d", got)
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(time.Date(2024, time.February, 15, 13, 30, 0, 0, time.UTC))
	if !start.Equal(date(2024, time.February, 1)) {
		t.Errorf("expected start 2024-02-01, got %v", start)
	}
	if !end.Equal(date(2024, time.February, 29)) {
		t.Errorf("expected end 2024-02-29, got %v", end)
	}
}

func TestWindow(t *testing.T) {
	w := NewWindow(WindowModeDateRange, date(2024, time.February, 1), date(2024, time.February, 29))

	t.Run("days counts inclusively", func(t *testing.T) {
		if got := w.Days(); got != 29 {
			t.Errorf("expected 29 days, got %d", got)
		}
	})

	t.Run("contains boundary dates", func(t *testing.T) {
		if !w.Contains(date(2024, time.February, 1)) || !w.Contains(date(2024, time.February, 29)) {
			t.Error("expected window to contain both boundary dates")
		}
		if w.Contains(date(2024, time.March, 1)) {
			t.Error("expected window not to contain the day after its end")
		}
	})

	t.Run("overlaps partially covered ranges", func(t *testing.T) {
		if !w.Overlaps(date(2024, time.January, 15), date(2024, time.February, 5)) {
			t.Error("expected overlap with range crossing the window start")
		}
		if w.Overlaps(date(2024, time.March, 1), date(2024, time.March, 31)) {
			t.Error("expected no overlap with a disjoint range")
		}
	})
}
