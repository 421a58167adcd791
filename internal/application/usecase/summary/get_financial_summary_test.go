// Package summary contains the financial summary use case: window-scoped
// income and expense aggregation with day-based pro-ration.
package summary

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func window(start, end time.Time) valueobject.Window {
	return valueobject.NewWindow(valueobject.WindowModeDateRange, start, end)
}

func project(monthlyBudget string) *entity.Project {
	return &entity.Project{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		Name:          "Riverside flat",
		MonthlyBudget: decimal.RequireFromString(monthlyBudget),
	}
}

func dated(p *entity.Project, txType entity.TransactionType, amount string, on time.Time) *entity.Transaction {
	return entity.NewTransaction(p.UserID, p.ID, txType, decimal.RequireFromString(amount), on, nil, nil, "")
}

func periodBased(p *entity.Project, txType entity.TransactionType, amount string, start, end time.Time) *entity.Transaction {
	return entity.NewPeriodTransaction(p.UserID, p.ID, txType, decimal.RequireFromString(amount), start, end, nil, nil, "")
}

func TestComputeProRation(t *testing.T) {
	p := project("0")

	t.Run("quarterly expense pro-rates into a one-month window", func(t *testing.T) {
		// 900 over the 91-day leap quarter; 29 of those days fall in February.
		tx := periodBased(p, entity.TransactionTypeExpense, "900",
			date(2024, time.January, 1), date(2024, time.March, 31))

		out := Compute(p, []*entity.Transaction{tx},
			window(date(2024, time.February, 1), date(2024, time.February, 29)))

		want := decimal.NewFromInt(900).
			Mul(decimal.NewFromInt(29)).
			Div(decimal.NewFromInt(91))
		if !out.Expense.Equal(want) {
			t.Errorf("expected expense %s, got %s", want, out.Expense)
		}
	})

	t.Run("zero-length period counts as a single day", func(t *testing.T) {
		day := date(2024, time.February, 15)
		tx := periodBased(p, entity.TransactionTypeExpense, "70", day, day)

		out := Compute(p, []*entity.Transaction{tx},
			window(date(2024, time.February, 1), date(2024, time.February, 29)))

		if !out.Expense.Equal(decimal.NewFromInt(70)) {
			t.Errorf("expected expense 70, got %s", out.Expense)
		}
	})

	t.Run("window outside the period contributes nothing", func(t *testing.T) {
		tx := periodBased(p, entity.TransactionTypeExpense, "900",
			date(2024, time.January, 1), date(2024, time.March, 31))

		out := Compute(p, []*entity.Transaction{tx},
			window(date(2024, time.May, 1), date(2024, time.May, 31)))

		if !out.Expense.IsZero() {
			t.Errorf("expected zero expense, got %s", out.Expense)
		}
		if out.TransactionCount != 0 {
			t.Errorf("expected no counted transactions, got %d", out.TransactionCount)
		}
	})

	t.Run("window inside a multi-month period pro-rates by its day count", func(t *testing.T) {
		// 600 over Jan 1 .. Jun 30 2024 = 182 days; a 10-day window inside it.
		tx := periodBased(p, entity.TransactionTypeExpense, "600",
			date(2024, time.January, 1), date(2024, time.June, 30))

		out := Compute(p, []*entity.Transaction{tx},
			window(date(2024, time.March, 1), date(2024, time.March, 10)))

		want := decimal.NewFromInt(600).
			Mul(decimal.NewFromInt(10)).
			Div(decimal.NewFromInt(182))
		if !out.Expense.Equal(want) {
			t.Errorf("expected expense %s, got %s", want, out.Expense)
		}
	})

	t.Run("dated transactions count at full amount inside the window", func(t *testing.T) {
		txs := []*entity.Transaction{
			dated(p, entity.TransactionTypeExpense, "120.50", date(2024, time.February, 10)),
			dated(p, entity.TransactionTypeExpense, "80", date(2024, time.March, 2)), // outside
		}

		out := Compute(p, txs, window(date(2024, time.February, 1), date(2024, time.February, 29)))

		if !out.Expense.Equal(decimal.RequireFromString("120.50")) {
			t.Errorf("expected expense 120.50, got %s", out.Expense)
		}
	})
}

func TestComputeFundExclusion(t *testing.T) {
	p := project("0")

	fundPaid := dated(p, entity.TransactionTypeExpense, "300", date(2024, time.February, 10))
	fundPaid.FromFund = true
	regular := dated(p, entity.TransactionTypeExpense, "100", date(2024, time.February, 12))

	out := Compute(p, []*entity.Transaction{fundPaid, regular},
		window(date(2024, time.February, 1), date(2024, time.February, 29)))

	if !out.Expense.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected fund-paid expense excluded, got %s", out.Expense)
	}
}

func TestComputeIncomeFloor(t *testing.T) {
	t.Run("accrued monthly income floors a month with no recorded income", func(t *testing.T) {
		p := project("1000")

		out := Compute(p, nil, window(date(2024, time.February, 1), date(2024, time.February, 29)))

		if !out.Income.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected income 1000, got %s", out.Income)
		}
		if !out.RecordedIncome.IsZero() {
			t.Errorf("expected zero recorded income, got %s", out.RecordedIncome)
		}
		if !out.AccruedIncome.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected accrued income 1000, got %s", out.AccruedIncome)
		}
	})

	t.Run("recorded income wins when it exceeds the accrual", func(t *testing.T) {
		p := project("1000")
		tx := dated(p, entity.TransactionTypeIncome, "1500", date(2024, time.February, 10))

		out := Compute(p, []*entity.Transaction{tx},
			window(date(2024, time.February, 1), date(2024, time.February, 29)))

		if !out.Income.Equal(decimal.NewFromInt(1500)) {
			t.Errorf("expected income 1500, got %s", out.Income)
		}
	})

	t.Run("accrual wins when recorded income falls short", func(t *testing.T) {
		p := project("1000")
		tx := dated(p, entity.TransactionTypeIncome, "400", date(2024, time.February, 10))

		out := Compute(p, []*entity.Transaction{tx},
			window(date(2024, time.February, 1), date(2024, time.February, 29)))

		if !out.Income.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected income 1000, got %s", out.Income)
		}
		if !out.RecordedIncome.Equal(decimal.NewFromInt(400)) {
			t.Errorf("expected recorded income 400, got %s", out.RecordedIncome)
		}
	})

	t.Run("half a month accrues half the monthly income", func(t *testing.T) {
		p := project("1000")

		// April has 30 days; the window covers 15 of them.
		out := Compute(p, nil, window(date(2024, time.April, 1), date(2024, time.April, 15)))

		if !out.AccruedIncome.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected accrued income 500, got %s", out.AccruedIncome)
		}
	})

	t.Run("accrual spans multiple months", func(t *testing.T) {
		p := project("1000")

		out := Compute(p, nil, window(date(2024, time.April, 1), date(2024, time.June, 30)))

		if !out.AccruedIncome.Equal(decimal.NewFromInt(3000)) {
			t.Errorf("expected accrued income 3000, got %s", out.AccruedIncome)
		}
	})

	t.Run("accrual clips to the contract span", func(t *testing.T) {
		p := project("1000")
		start := date(2024, time.March, 1)
		end := date(2024, time.May, 1) // exclusive: covers March and April only
		p.StartDate = &start
		p.EndDate = &end

		out := Compute(p, nil, window(date(2024, time.January, 1), date(2024, time.December, 31)))

		if !out.AccruedIncome.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("expected accrued income 2000, got %s", out.AccruedIncome)
		}
	})

	t.Run("no monthly budget means no accrual", func(t *testing.T) {
		p := project("0")

		out := Compute(p, nil, window(date(2024, time.February, 1), date(2024, time.February, 29)))

		if !out.Income.IsZero() {
			t.Errorf("expected zero income, got %s", out.Income)
		}
	})
}

func TestComputeExceptionalSubtotal(t *testing.T) {
	p := project("0")

	planned := dated(p, entity.TransactionTypeExpense, "100", date(2024, time.February, 5))
	unforeseen := dated(p, entity.TransactionTypeExpense, "250", date(2024, time.February, 20))
	unforeseen.IsExceptional = true

	out := Compute(p, []*entity.Transaction{planned, unforeseen},
		window(date(2024, time.February, 1), date(2024, time.February, 29)))

	if !out.Expense.Equal(decimal.NewFromInt(350)) {
		t.Errorf("expected expense 350, got %s", out.Expense)
	}
	if !out.ExceptionalExpense.Equal(decimal.NewFromInt(250)) {
		t.Errorf("expected exceptional subtotal 250, got %s", out.ExceptionalExpense)
	}
}
