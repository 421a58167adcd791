package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestBudgetWindowFor(t *testing.T) {
	t.Run("monthly budget maps to the calendar month of ref", func(t *testing.T) {
		b := NewBudget(uuid.New(), uuid.New(), uuid.New(), BudgetPeriodMonthly,
			decimal.NewFromInt(500), date(2024, time.January, 1), date(2024, time.December, 31))

		start, end := b.WindowFor(date(2024, time.February, 14))
		if !start.Equal(date(2024, time.February, 1)) || !end.Equal(date(2024, time.February, 29)) {
			t.Errorf("expected 2024-02-01..2024-02-29, got %s..%s", start, end)
		}
	})

	t.Run("annual budget keeps its configured dates", func(t *testing.T) {
		b := NewBudget(uuid.New(), uuid.New(), uuid.New(), BudgetPeriodAnnual,
			decimal.NewFromInt(6000), date(2024, time.March, 15), date(2025, time.March, 14))

		start, end := b.WindowFor(date(2024, time.July, 1))
		if !start.Equal(date(2024, time.March, 15)) || !end.Equal(date(2025, time.March, 14)) {
			t.Errorf("expected 2024-03-15..2025-03-14, got %s..%s", start, end)
		}
	})
}

func TestBudgetProgressFor(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()
	categoryID := uuid.New()
	otherCategoryID := uuid.New()
	category := &Category{ID: categoryID, Name: "Maintenance", Type: CategoryTypeExpense}

	expense := func(amount string, on time.Time, catID uuid.UUID) *Transaction {
		tx := NewTransaction(userID, projectID, TransactionTypeExpense,
			decimal.RequireFromString(amount), on, &catID, nil, "")
		return tx
	}

	t.Run("sums only expenses of the budget category", func(t *testing.T) {
		b := NewBudget(userID, projectID, categoryID, BudgetPeriodMonthly,
			decimal.NewFromInt(500), date(2024, time.January, 1), date(2024, time.December, 31))

		income := NewTransaction(userID, projectID, TransactionTypeIncome,
			decimal.NewFromInt(999), date(2024, time.February, 10), &categoryID, nil, "")
		txs := []*Transaction{
			expense("100", date(2024, time.February, 5), categoryID),
			expense("50", date(2024, time.February, 20), categoryID),
			expense("75", date(2024, time.February, 8), otherCategoryID), // different category
			expense("60", date(2024, time.March, 1), categoryID),         // outside window
			income,
		}

		p := b.ProgressFor(category, txs, date(2024, time.February, 29))
		if !p.Spent.Equal(decimal.NewFromInt(150)) {
			t.Errorf("expected spent 150, got %s", p.Spent)
		}
		if !p.Remaining.Equal(decimal.NewFromInt(350)) {
			t.Errorf("expected remaining 350, got %s", p.Remaining)
		}
		if p.OverBudget {
			t.Error("expected budget not to be over")
		}
	})

	t.Run("flags overspend", func(t *testing.T) {
		b := NewBudget(userID, projectID, categoryID, BudgetPeriodMonthly,
			decimal.NewFromInt(100), date(2024, time.January, 1), date(2024, time.December, 31))

		txs := []*Transaction{expense("130", date(2024, time.February, 5), categoryID)}

		p := b.ProgressFor(category, txs, date(2024, time.February, 10))
		if !p.OverBudget {
			t.Error("expected over-budget flag")
		}
		if !p.Remaining.Equal(decimal.NewFromInt(-30)) {
			t.Errorf("expected remaining -30, got %s", p.Remaining)
		}
	})

	t.Run("fund-paid expenses do not count as spend", func(t *testing.T) {
		b := NewBudget(userID, projectID, categoryID, BudgetPeriodMonthly,
			decimal.NewFromInt(100), date(2024, time.January, 1), date(2024, time.December, 31))

		tx := expense("80", date(2024, time.February, 5), categoryID)
		tx.FromFund = true

		p := b.ProgressFor(category, []*Transaction{tx}, date(2024, time.February, 10))
		if !p.Spent.IsZero() {
			t.Errorf("expected zero spend, got %s", p.Spent)
		}
	})

	t.Run("expected-by-time scales by elapsed days", func(t *testing.T) {
		// February 2024 has 29 days; by the 14th, 14 days have elapsed.
		b := NewBudget(userID, projectID, categoryID, BudgetPeriodMonthly,
			decimal.NewFromInt(290), date(2024, time.January, 1), date(2024, time.December, 31))

		p := b.ProgressFor(category, nil, date(2024, time.February, 14))
		want := decimal.NewFromInt(290).
			Mul(decimal.NewFromInt(14)).
			Div(decimal.NewFromInt(29))
		if !p.ExpectedByTime.Equal(want) {
			t.Errorf("expected %s, got %s", want, p.ExpectedByTime)
		}
	})

	t.Run("percent used derives from the budget amount", func(t *testing.T) {
		b := NewBudget(userID, projectID, categoryID, BudgetPeriodMonthly,
			decimal.NewFromInt(200), date(2024, time.January, 1), date(2024, time.December, 31))

		txs := []*Transaction{expense("50", date(2024, time.February, 5), categoryID)}

		p := b.ProgressFor(category, txs, date(2024, time.February, 10))
		if !p.PercentUsed.Equal(decimal.NewFromInt(25)) {
			t.Errorf("expected 25 percent, got %s", p.PercentUsed)
		}
	})

	t.Run("period expense pro-rates into the budget window", func(t *testing.T) {
		b := NewBudget(userID, projectID, categoryID, BudgetPeriodMonthly,
			decimal.NewFromInt(500), date(2024, time.January, 1), date(2024, time.December, 31))

		// 910 over the 91-day leap quarter; February holds 29 of those days.
		tx := periodTx(TransactionTypeExpense, "910", date(2024, time.January, 1), date(2024, time.March, 31))
		tx.CategoryID = &categoryID

		p := b.ProgressFor(category, []*Transaction{tx}, date(2024, time.February, 29))
		want := decimal.NewFromInt(910).
			Mul(decimal.NewFromInt(29)).
			Div(decimal.NewFromInt(91))
		if !p.Spent.Equal(want) {
			t.Errorf("expected %s, got %s", want, p.Spent)
		}
	})
}
