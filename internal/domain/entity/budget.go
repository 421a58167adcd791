// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// BudgetPeriodType represents the cadence of a category budget.
type BudgetPeriodType string

const (
	BudgetPeriodMonthly BudgetPeriodType = "monthly"
	BudgetPeriodAnnual  BudgetPeriodType = "annual"
)

// Budget represents a spending limit for one category of a project. Monthly
// budgets renew implicitly each calendar month; annual budgets run from
// StartDate to EndDate (default: start + 1 year - 1 day).
type Budget struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	ProjectID  uuid.UUID
	CategoryID uuid.UUID
	PeriodType BudgetPeriodType
	Amount     decimal.Decimal
	StartDate  time.Time
	EndDate    time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time // Soft-delete support
}

// NewBudget creates a new Budget entity.
func NewBudget(
	userID uuid.UUID,
	projectID uuid.UUID,
	categoryID uuid.UUID,
	periodType BudgetPeriodType,
	amount decimal.Decimal,
	startDate time.Time,
	endDate time.Time,
) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:         uuid.New(),
		UserID:     userID,
		ProjectID:  projectID,
		CategoryID: categoryID,
		PeriodType: periodType,
		Amount:     amount,
		StartDate:  startDate,
		EndDate:    endDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// WindowFor returns the budget window that applies at the reference time.
// Monthly budgets map to the calendar month containing ref; annual budgets
// use their configured start/end dates.
func (b *Budget) WindowFor(ref time.Time) (time.Time, time.Time) {
	if b.PeriodType == BudgetPeriodMonthly {
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		return start, end
	}
	return b.StartDate, b.EndDate
}

// BudgetProgress represents a budget together with its spending progress over
// the applicable window.
type BudgetProgress struct {
	Budget         *Budget
	Category       *Category
	Spent          decimal.Decimal
	Remaining      decimal.Decimal
	ExpectedByTime decimal.Decimal // Amount x elapsed days / total days
	PercentUsed    decimal.Decimal
	OverBudget     bool
	WindowStart    time.Time
	WindowEnd      time.Time
}

// ProgressFor computes the budget's spending progress over the window that
// applies at ref. Spent sums the window contributions of the given
// transactions, counting only expenses of the budget's category; fund-paid
// expenses contribute nothing. ExpectedByTime scales the budget amount by the
// elapsed share of the window.
func (b *Budget) ProgressFor(category *Category, transactions []*Transaction, ref time.Time) *BudgetProgress {
	windowStart, windowEnd := b.WindowFor(ref)

	spent := decimal.Zero
	for _, t := range transactions {
		if t.Type != TransactionTypeExpense {
			continue
		}
		if t.CategoryID == nil || *t.CategoryID != b.CategoryID {
			continue
		}
		spent = spent.Add(t.ContributionWithin(windowStart, windowEnd))
	}

	totalDays := valueobject.DaysInclusive(windowStart, windowEnd)
	elapsedDays := valueobject.OverlapDays(windowStart, windowEnd, windowStart, ref)
	expected := decimal.Zero
	if totalDays > 0 && elapsedDays > 0 {
		expected = b.Amount.
			Mul(decimal.NewFromInt(int64(elapsedDays))).
			Div(decimal.NewFromInt(int64(totalDays)))
	}

	percent := decimal.Zero
	if b.Amount.IsPositive() {
		percent = spent.Mul(decimal.NewFromInt(100)).Div(b.Amount)
	}

	return &BudgetProgress{
		Budget:         b,
		Category:       category,
		Spent:          spent,
		Remaining:      b.Amount.Sub(spent),
		ExpectedByTime: expected,
		PercentUsed:    percent,
		OverBudget:     spent.GreaterThan(b.Amount),
		WindowStart:    windowStart,
		WindowEnd:      windowEnd,
	}
}
