package entity

import (
	"testing"
	"time"
)

func TestPeriodKey(t *testing.T) {
	if got := PeriodKey(2024, time.March); got != "2024-03" {
		t.Errorf("expected 2024-03, got %s", got)
	}
	if got := PeriodKey(2024, time.December); got != "2024-12" {
		t.Errorf("expected 2024-12, got %s", got)
	}
}

func TestRecurringTemplateShouldGenerateFor(t *testing.T) {
	base := func() *RecurringTemplate {
		return &RecurringTemplate{
			StartDate:    date(2024, 3, 10),
			EndCondition: RecurringEndNever,
			IsActive:     true,
		}
	}

	t.Run("active template inside its span generates", func(t *testing.T) {
		if !base().ShouldGenerateFor(date(2024, 6, 1)) {
			t.Error("expected generation to be due")
		}
	})

	t.Run("inactive template never generates", func(t *testing.T) {
		template := base()
		template.IsActive = false
		if template.ShouldGenerateFor(date(2024, 6, 1)) {
			t.Error("expected no generation for an inactive template")
		}
	})

	t.Run("months before the start are skipped", func(t *testing.T) {
		if base().ShouldGenerateFor(date(2024, 2, 1)) {
			t.Error("expected no generation before the start month")
		}
	})

	t.Run("the start month itself generates", func(t *testing.T) {
		if !base().ShouldGenerateFor(date(2024, 3, 1)) {
			t.Error("expected generation in the start month")
		}
	})

	t.Run("occurrence limit stops generation", func(t *testing.T) {
		template := base()
		template.EndCondition = RecurringEndOccurrences
		template.OccurrenceLimit = 3
		template.OccurrencesCount = 3
		if template.ShouldGenerateFor(date(2024, 6, 1)) {
			t.Error("expected no generation at the occurrence limit")
		}
		template.OccurrencesCount = 2
		if !template.ShouldGenerateFor(date(2024, 6, 1)) {
			t.Error("expected generation below the occurrence limit")
		}
	})

	t.Run("until date stops generation after its month", func(t *testing.T) {
		template := base()
		template.EndCondition = RecurringEndUntilDate
		until := date(2024, 5, 15)
		template.UntilDate = &until
		if !template.ShouldGenerateFor(date(2024, 5, 1)) {
			t.Error("expected generation in the until month")
		}
		if template.ShouldGenerateFor(date(2024, 6, 1)) {
			t.Error("expected no generation after the until month")
		}
	})
}
