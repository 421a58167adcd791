package budget

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestDefaultBudgetEnd(t *testing.T) {
	t.Run("one year minus a day", func(t *testing.T) {
		if got := defaultBudgetEnd(date(2024, 3, 15)); !got.Equal(date(2025, 3, 14)) {
			t.Errorf("expected 2025-03-14, got %s", got.Format("2006-01-02"))
		}
	})

	t.Run("first of january runs through december 31", func(t *testing.T) {
		if got := defaultBudgetEnd(date(2024, 1, 1)); !got.Equal(date(2024, 12, 31)) {
			t.Errorf("expected 2024-12-31, got %s", got.Format("2006-01-02"))
		}
	})

	t.Run("leap day start", func(t *testing.T) {
		if got := defaultBudgetEnd(date(2024, 2, 29)); !got.Equal(date(2025, 2, 28)) {
			t.Errorf("expected 2025-02-28, got %s", got.Format("2006-01-02"))
		}
	})
}
