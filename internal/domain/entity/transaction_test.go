package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datedTx(txType TransactionType, amount string, on time.Time) *Transaction {
	return NewTransaction(uuid.New(), uuid.New(), txType, decimal.RequireFromString(amount), on, nil, nil, "")
}

func periodTx(txType TransactionType, amount string, start, end time.Time) *Transaction {
	return NewPeriodTransaction(uuid.New(), uuid.New(), txType, decimal.RequireFromString(amount), start, end, nil, nil, "")
}

func TestTransactionContributionWithin(t *testing.T) {
	t.Run("dated transaction inside window counts in full", func(t *testing.T) {
		tx := datedTx(TransactionTypeExpense, "150.50", date(2024, time.February, 10))

		got := tx.ContributionWithin(date(2024, time.February, 1), date(2024, time.February, 29))
		if !got.Equal(decimal.RequireFromString("150.50")) {
			t.Errorf("expected 150.50, got %s", got)
		}
	})

	t.Run("dated transaction outside window contributes zero", func(t *testing.T) {
		tx := datedTx(TransactionTypeExpense, "150.50", date(2024, time.March, 1))

		got := tx.ContributionWithin(date(2024, time.February, 1), date(2024, time.February, 29))
		if !got.IsZero() {
			t.Errorf("expected zero, got %s", got)
		}
	})

	t.Run("dated transaction on window boundary counts", func(t *testing.T) {
		tx := datedTx(TransactionTypeIncome, "100", date(2024, time.February, 29))

		got := tx.ContributionWithin(date(2024, time.February, 1), date(2024, time.February, 29))
		if !got.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected 100, got %s", got)
		}
	})

	t.Run("period transaction pro-rates by day over leap February", func(t *testing.T) {
		// 900 over Jan 1 .. Mar 31 2024 = 91 days; February overlap = 29 days.
		tx := periodTx(TransactionTypeExpense, "900", date(2024, time.January, 1), date(2024, time.March, 31))

		got := tx.ContributionWithin(date(2024, time.February, 1), date(2024, time.February, 29))
		want := decimal.NewFromInt(900).
			Mul(decimal.NewFromInt(29)).
			Div(decimal.NewFromInt(91))
		if !got.Equal(want) {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("period transaction fully inside window counts in full", func(t *testing.T) {
		tx := periodTx(TransactionTypeExpense, "300", date(2024, time.February, 5), date(2024, time.February, 10))

		got := tx.ContributionWithin(date(2024, time.January, 1), date(2024, time.December, 31))
		if !got.Equal(decimal.NewFromInt(300)) {
			t.Errorf("expected 300, got %s", got)
		}
	})

	t.Run("disjoint period contributes zero", func(t *testing.T) {
		tx := periodTx(TransactionTypeExpense, "300", date(2024, time.May, 1), date(2024, time.May, 31))

		got := tx.ContributionWithin(date(2024, time.February, 1), date(2024, time.February, 29))
		if !got.IsZero() {
			t.Errorf("expected zero, got %s", got)
		}
	})

	t.Run("single-day period counts as one day", func(t *testing.T) {
		tx := periodTx(TransactionTypeExpense, "42", date(2024, time.February, 15), date(2024, time.February, 15))

		got := tx.ContributionWithin(date(2024, time.February, 1), date(2024, time.February, 29))
		if !got.Equal(decimal.NewFromInt(42)) {
			t.Errorf("expected 42, got %s", got)
		}
	})

	t.Run("fund-paid transaction contributes zero", func(t *testing.T) {
		tx := datedTx(TransactionTypeExpense, "500", date(2024, time.February, 10))
		tx.FromFund = true

		got := tx.ContributionWithin(date(2024, time.February, 1), date(2024, time.February, 29))
		if !got.IsZero() {
			t.Errorf("expected zero, got %s", got)
		}
	})
}

func TestTransactionEffectiveDate(t *testing.T) {
	t.Run("dated transaction returns its date", func(t *testing.T) {
		on := date(2024, time.June, 3)
		tx := datedTx(TransactionTypeExpense, "10", on)
		if !tx.EffectiveDate().Equal(on) {
			t.Errorf("expected %s, got %s", on, tx.EffectiveDate())
		}
	})

	t.Run("period transaction returns the period start", func(t *testing.T) {
		start := date(2024, time.June, 1)
		tx := periodTx(TransactionTypeExpense, "10", start, date(2024, time.June, 30))
		if !tx.EffectiveDate().Equal(start) {
			t.Errorf("expected %s, got %s", start, tx.EffectiveDate())
		}
	})
}
