package fund

import (
	"testing"
	"time"

	"github.com/property-ledger/backend/internal/domain/entity"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestFirstPendingAccrual(t *testing.T) {
	t.Run("resumes after the last accrued period", func(t *testing.T) {
		fund := &entity.Fund{
			CreatedAt:         date(2024, 1, 20),
			LastAccruedPeriod: "2024-04",
		}
		if got := firstPendingAccrual(fund); !got.Equal(date(2024, 5, 1)) {
			t.Errorf("expected 2024-05-01, got %s", got.Format("2006-01-02"))
		}
	})

	t.Run("year rollover", func(t *testing.T) {
		fund := &entity.Fund{
			CreatedAt:         date(2023, 6, 1),
			LastAccruedPeriod: "2023-12",
		}
		if got := firstPendingAccrual(fund); !got.Equal(date(2024, 1, 1)) {
			t.Errorf("expected 2024-01-01, got %s", got.Format("2006-01-02"))
		}
	})

	t.Run("fresh fund starts in its creation month", func(t *testing.T) {
		fund := &entity.Fund{CreatedAt: date(2024, 3, 17)}
		if got := firstPendingAccrual(fund); !got.Equal(date(2024, 3, 1)) {
			t.Errorf("expected 2024-03-01, got %s", got.Format("2006-01-02"))
		}
	})
}
