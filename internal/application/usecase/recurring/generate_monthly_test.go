package recurring

import (
	"errors"
	"testing"
	"time"

	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestInstanceDate(t *testing.T) {
	t.Run("regular day stays put", func(t *testing.T) {
		if got := instanceDate(2024, time.March, 15); !got.Equal(date(2024, 3, 15)) {
			t.Errorf("expected 2024-03-15, got %s", got.Format("2006-01-02"))
		}
	})

	t.Run("day 31 clamps to a leap February", func(t *testing.T) {
		if got := instanceDate(2024, time.February, 31); !got.Equal(date(2024, 2, 29)) {
			t.Errorf("expected 2024-02-29, got %s", got.Format("2006-01-02"))
		}
	})

	t.Run("day 31 clamps to a plain February", func(t *testing.T) {
		if got := instanceDate(2023, time.February, 31); !got.Equal(date(2023, 2, 28)) {
			t.Errorf("expected 2023-02-28, got %s", got.Format("2006-01-02"))
		}
	})

	t.Run("day 31 clamps to a 30-day month", func(t *testing.T) {
		if got := instanceDate(2024, time.April, 31); !got.Equal(date(2024, 4, 30)) {
			t.Errorf("expected 2024-04-30, got %s", got.Format("2006-01-02"))
		}
	})

	t.Run("the last day of a long month is untouched", func(t *testing.T) {
		if got := instanceDate(2024, time.January, 31); !got.Equal(date(2024, 1, 31)) {
			t.Errorf("expected 2024-01-31, got %s", got.Format("2006-01-02"))
		}
	})
}

func TestParsePeriod(t *testing.T) {
	now := date(2024, 6, 14)

	t.Run("empty period defaults to the current month", func(t *testing.T) {
		year, month, err := parsePeriod("", now)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if year != 2024 || month != time.June {
			t.Errorf("expected 2024-06, got %04d-%02d", year, int(month))
		}
	})

	t.Run("explicit period is parsed", func(t *testing.T) {
		year, month, err := parsePeriod("2023-02", now)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if year != 2023 || month != time.February {
			t.Errorf("expected 2023-02, got %04d-%02d", year, int(month))
		}
	})

	t.Run("malformed period is rejected", func(t *testing.T) {
		_, _, err := parsePeriod("February 2023", now)
		var recErr *domainerror.RecurringError
		if !errors.As(err, &recErr) || recErr.Code != domainerror.ErrCodeInvalidGenerationPeriod {
			t.Fatalf("expected code %s, got %v", domainerror.ErrCodeInvalidGenerationPeriod, err)
		}
	})
}

func TestFirstPendingMonth(t *testing.T) {
	t.Run("resumes after the last generated period", func(t *testing.T) {
		template := &entity.RecurringTemplate{
			StartDate:           date(2024, 1, 10),
			LastGeneratedPeriod: "2024-03",
		}
		if got := firstPendingMonth(template); !got.Equal(date(2024, 4, 1)) {
			t.Errorf("expected 2024-04-01, got %s", got.Format("2006-01-02"))
		}
	})

	t.Run("year rollover", func(t *testing.T) {
		template := &entity.RecurringTemplate{
			StartDate:           date(2023, 1, 10),
			LastGeneratedPeriod: "2023-12",
		}
		if got := firstPendingMonth(template); !got.Equal(date(2024, 1, 1)) {
			t.Errorf("expected 2024-01-01, got %s", got.Format("2006-01-02"))
		}
	})

	t.Run("fresh template starts at its start month", func(t *testing.T) {
		template := &entity.RecurringTemplate{StartDate: date(2024, 5, 20)}
		if got := firstPendingMonth(template); !got.Equal(date(2024, 5, 1)) {
			t.Errorf("expected 2024-05-01, got %s", got.Format("2006-01-02"))
		}
	})
}

func TestValidateEndCondition(t *testing.T) {
	start := date(2024, 1, 1)

	t.Run("never needs nothing else", func(t *testing.T) {
		if err := validateEndCondition(entity.RecurringEndNever, 0, nil, start); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("occurrences needs a positive limit", func(t *testing.T) {
		if err := validateEndCondition(entity.RecurringEndOccurrences, 0, nil, start); err == nil {
			t.Fatal("expected an error")
		}
		if err := validateEndCondition(entity.RecurringEndOccurrences, 12, nil, start); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("until_date needs a date at or after the start", func(t *testing.T) {
		if err := validateEndCondition(entity.RecurringEndUntilDate, 0, nil, start); err == nil {
			t.Fatal("expected an error for a missing until date")
		}
		early := date(2023, 12, 31)
		if err := validateEndCondition(entity.RecurringEndUntilDate, 0, &early, start); err == nil {
			t.Fatal("expected an error for an until date before the start")
		}
		until := date(2024, 12, 31)
		if err := validateEndCondition(entity.RecurringEndUntilDate, 0, &until, start); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("unknown condition is rejected", func(t *testing.T) {
		if err := validateEndCondition(entity.RecurringEndCondition("weekly"), 0, nil, start); err == nil {
			t.Fatal("expected an error")
		}
	})
}
