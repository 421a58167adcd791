// Package project contains project-related use cases.
package project

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

func TestResolveOverviewWindow(t *testing.T) {
	now := date(2024, time.June, 14)

	period := func(start, end time.Time) *entity.ContractPeriod {
		return &entity.ContractPeriod{
			ID:        uuid.New(),
			StartDate: start,
			EndDate:   end,
		}
	}

	liveProject := func() *entity.Project {
		start := date(2024, time.January, 1)
		end := date(2026, time.January, 1)
		return &entity.Project{ID: uuid.New(), StartDate: &start, EndDate: &end}
	}

	t.Run("defaults to the current month for a live project", func(t *testing.T) {
		p := liveProject()
		current := period(date(2024, time.January, 1), date(2024, time.December, 31))

		w := resolveOverviewWindow(p, current, nil, now)
		if w.Mode != valueobject.WindowModeCurrentMonth {
			t.Fatalf("expected current_month, got %s", w.Mode)
		}
		if !w.Start.Equal(date(2024, time.June, 1)) || !w.End.Equal(date(2024, time.June, 30)) {
			t.Errorf("expected 2024-06-01..2024-06-30, got %s..%s", w.Start, w.End)
		}
	})

	t.Run("selected historical period forces period mode with its bounds", func(t *testing.T) {
		p := liveProject()
		past := period(date(2023, time.January, 1), date(2023, time.December, 31))
		current := period(date(2024, time.January, 1), date(2024, time.December, 31))

		w := resolveOverviewWindow(p, current, past, now)
		if w.Mode != valueobject.WindowModePeriod {
			t.Fatalf("expected period, got %s", w.Mode)
		}
		if !w.Start.Equal(past.StartDate) || !w.End.Equal(past.EndDate) {
			t.Errorf("expected %s..%s, got %s..%s", past.StartDate, past.EndDate, w.Start, w.End)
		}
	})

	t.Run("selecting the current period keeps the default window", func(t *testing.T) {
		p := liveProject()
		current := period(date(2024, time.January, 1), date(2024, time.December, 31))

		w := resolveOverviewWindow(p, current, current, now)
		if w.Mode != valueobject.WindowModeCurrentMonth {
			t.Errorf("expected current_month, got %s", w.Mode)
		}
	})

	t.Run("project over before the current month shows the whole contract", func(t *testing.T) {
		start := date(2023, time.January, 1)
		end := date(2024, time.January, 1) // exclusive; last covered day 2023-12-31
		p := &entity.Project{ID: uuid.New(), StartDate: &start, EndDate: &end}

		w := resolveOverviewWindow(p, nil, nil, now)
		if w.Mode != valueobject.WindowModeProject {
			t.Fatalf("expected project, got %s", w.Mode)
		}
		if !w.Start.Equal(start) || !w.End.Equal(date(2023, time.December, 31)) {
			t.Errorf("expected 2023-01-01..2023-12-31, got %s..%s", w.Start, w.End)
		}
	})

	t.Run("project ending inside the current month stays on current month", func(t *testing.T) {
		start := date(2023, time.July, 1)
		end := date(2024, time.June, 20)
		p := &entity.Project{ID: uuid.New(), StartDate: &start, EndDate: &end}

		w := resolveOverviewWindow(p, nil, nil, now)
		if w.Mode != valueobject.WindowModeCurrentMonth {
			t.Errorf("expected current_month, got %s", w.Mode)
		}
	})

	t.Run("project without contract dates defaults to current month", func(t *testing.T) {
		p := &entity.Project{ID: uuid.New()}

		w := resolveOverviewWindow(p, nil, nil, now)
		if w.Mode != valueobject.WindowModeCurrentMonth {
			t.Errorf("expected current_month, got %s", w.Mode)
		}
	})

	t.Run("selected period wins even when no period is current", func(t *testing.T) {
		p := liveProject()
		past := period(date(2022, time.January, 1), date(2022, time.December, 31))

		w := resolveOverviewWindow(p, nil, past, now)
		if w.Mode != valueobject.WindowModePeriod {
			t.Errorf("expected period, got %s", w.Mode)
		}
	})
}
