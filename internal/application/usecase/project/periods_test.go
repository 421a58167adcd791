// Package project contains project-related use cases.
package project

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestContractEndDate(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		duration int
		want     time.Time
	}{
		{"twelve months from new year", date(2024, time.January, 1), 12, date(2025, time.January, 1)},
		{"one month from jan 31 clamps", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"eighteen months", date(2024, time.March, 15), 18, date(2025, time.September, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContractEndDate(tt.start, tt.duration); !got.Equal(tt.want) {
				t.Errorf("ContractEndDate(%v, %d) = %v, want %v", tt.start, tt.duration, got, tt.want)
			}
		})
	}
}

func TestGeneratePeriods(t *testing.T) {
	projectID := uuid.New()

	t.Run("twelve month contract yields one period", func(t *testing.T) {
		periods := GeneratePeriods(projectID, date(2024, time.January, 1), 12, 1)

		if len(periods) != 1 {
			t.Fatalf("expected 1 period, got %d", len(periods))
		}
		if !periods[0].StartDate.Equal(date(2024, time.January, 1)) {
			t.Errorf("expected start 2024-01-01, got %v", periods[0].StartDate)
		}
		if !periods[0].EndDate.Equal(date(2024, time.December, 31)) {
			t.Errorf("expected end 2024-12-31, got %v", periods[0].EndDate)
		}
		if periods[0].ContractYear != "2024" {
			t.Errorf("expected label 2024, got %s", periods[0].ContractYear)
		}
		if periods[0].YearIndex != 1 {
			t.Errorf("expected year index 1, got %d", periods[0].YearIndex)
		}
	})

	t.Run("periods are contiguous across years", func(t *testing.T) {
		periods := GeneratePeriods(projectID, date(2024, time.June, 1), 24, 1)

		if len(periods) != 2 {
			t.Fatalf("expected 2 periods, got %d", len(periods))
		}
		if !periods[0].EndDate.Equal(date(2025, time.May, 31)) {
			t.Errorf("expected first period to end 2025-05-31, got %v", periods[0].EndDate)
		}
		if !periods[1].StartDate.Equal(date(2025, time.June, 1)) {
			t.Errorf("expected second period to start 2025-06-01, got %v", periods[1].StartDate)
		}
		if periods[0].ContractYear != "2024/2025" {
			t.Errorf("expected label 2024/2025, got %s", periods[0].ContractYear)
		}
	})

	t.Run("partial final year is clipped to the contract end", func(t *testing.T) {
		periods := GeneratePeriods(projectID, date(2024, time.January, 1), 18, 1)

		if len(periods) != 2 {
			t.Fatalf("expected 2 periods, got %d", len(periods))
		}
		if !periods[1].StartDate.Equal(date(2025, time.January, 1)) {
			t.Errorf("expected second period to start 2025-01-01, got %v", periods[1].StartDate)
		}
		if !periods[1].EndDate.Equal(date(2025, time.June, 30)) {
			t.Errorf("expected second period to end 2025-06-30, got %v", periods[1].EndDate)
		}
	})

	t.Run("first index offsets the year sequence", func(t *testing.T) {
		periods := GeneratePeriods(projectID, date(2026, time.January, 1), 24, 3)

		if len(periods) != 2 {
			t.Fatalf("expected 2 periods, got %d", len(periods))
		}
		if periods[0].YearIndex != 3 || periods[1].YearIndex != 4 {
			t.Errorf("expected year indexes 3 and 4, got %d and %d", periods[0].YearIndex, periods[1].YearIndex)
		}
	})

	t.Run("leap day start clamps across years", func(t *testing.T) {
		periods := GeneratePeriods(projectID, date(2024, time.February, 29), 24, 1)

		if len(periods) != 2 {
			t.Fatalf("expected 2 periods, got %d", len(periods))
		}
		// 2024-02-29 + 12 months clamps to 2025-02-28.
		if !periods[0].EndDate.Equal(date(2025, time.February, 27)) {
			t.Errorf("expected first period to end 2025-02-27, got %v", periods[0].EndDate)
		}
		if !periods[1].StartDate.Equal(date(2025, time.February, 28)) {
			t.Errorf("expected second period to start 2025-02-28, got %v", periods[1].StartDate)
		}
	})

	t.Run("non-positive duration yields nothing", func(t *testing.T) {
		if periods := GeneratePeriods(projectID, date(2024, time.January, 1), 0, 1); len(periods) != 0 {
			t.Errorf("expected no periods, got %d", len(periods))
		}
	})
}

func TestCurrentPeriod(t *testing.T) {
	projectID := uuid.New()
	periods := GeneratePeriods(projectID, date(2023, time.March, 1), 36, 1)

	t.Run("selects the latest started period", func(t *testing.T) {
		current := CurrentPeriod(periods, date(2024, time.July, 10))
		if current == nil {
			t.Fatal("expected a current period")
		}
		if !current.StartDate.Equal(date(2024, time.March, 1)) {
			t.Errorf("expected period starting 2024-03-01, got %v", current.StartDate)
		}
	})

	t.Run("start day itself counts as started", func(t *testing.T) {
		current := CurrentPeriod(periods, date(2025, time.March, 1))
		if current == nil {
			t.Fatal("expected a current period")
		}
		if !current.StartDate.Equal(date(2025, time.March, 1)) {
			t.Errorf("expected period starting 2025-03-01, got %v", current.StartDate)
		}
	})

	t.Run("nil before the first period starts", func(t *testing.T) {
		if current := CurrentPeriod(periods, date(2023, time.January, 15)); current != nil {
			t.Errorf("expected no current period, got %v", current.StartDate)
		}
	})

	t.Run("past the contract end the last period stays current", func(t *testing.T) {
		current := CurrentPeriod(periods, date(2030, time.January, 1))
		if current == nil {
			t.Fatal("expected a current period")
		}
		if current.YearIndex != 3 {
			t.Errorf("expected the final period (index 3), got %d", current.YearIndex)
		}
	})
}
