// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// Transaction represents a financial movement on a project. A transaction is
// either dated (TxDate set) or period-based (PeriodStart/PeriodEnd set),
// never both. Period-based transactions pro-rate linearly by day when a
// summary window overlaps only part of the period.
type Transaction struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	ProjectID           uuid.UUID
	Type                TransactionType
	Amount              decimal.Decimal // Always positive; Type carries the sign
	TxDate              *time.Time
	PeriodStart         *time.Time
	PeriodEnd           *time.Time
	CategoryID          *uuid.UUID
	SupplierID          *uuid.UUID
	IsExceptional       bool // Unforeseen expense, reported separately
	FromFund            bool // Paid from the project fund; excluded from summaries
	RecurringTemplateID *uuid.UUID
	GeneratedPeriod     *string    // YYYY-MM tag of a recurring instance, unique per template
	GroupID             *uuid.UUID // Tags members of one batch submission
	Notes               string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           *time.Time // Soft-delete support
}

// NewTransaction creates a new dated Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	projectID uuid.UUID,
	transactionType TransactionType,
	amount decimal.Decimal,
	txDate time.Time,
	categoryID *uuid.UUID,
	supplierID *uuid.UUID,
	notes string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:         uuid.New(),
		UserID:     userID,
		ProjectID:  projectID,
		Type:       transactionType,
		Amount:     amount,
		TxDate:     &txDate,
		CategoryID: categoryID,
		SupplierID: supplierID,
		Notes:      notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewPeriodTransaction creates a new period-based Transaction entity covering
// the inclusive span periodStart..periodEnd.
func NewPeriodTransaction(
	userID uuid.UUID,
	projectID uuid.UUID,
	transactionType TransactionType,
	amount decimal.Decimal,
	periodStart time.Time,
	periodEnd time.Time,
	categoryID *uuid.UUID,
	supplierID *uuid.UUID,
	notes string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		ProjectID:   projectID,
		Type:        transactionType,
		Amount:      amount,
		PeriodStart: &periodStart,
		PeriodEnd:   &periodEnd,
		CategoryID:  categoryID,
		SupplierID:  supplierID,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsPeriodBased returns true when the transaction spans a period rather than
// a single date.
func (t *Transaction) IsPeriodBased() bool {
	return t.PeriodStart != nil && t.PeriodEnd != nil
}

// EffectiveDate returns the date the transaction is anchored to: the
// transaction date for dated transactions, the period start otherwise.
func (t *Transaction) EffectiveDate() time.Time {
	if t.TxDate != nil {
		return *t.TxDate
	}
	if t.PeriodStart != nil {
		return *t.PeriodStart
	}
	return t.CreatedAt
}

// ContributionWithin returns the amount this transaction contributes to the
// inclusive window start..end. Dated transactions contribute their full
// amount when the date falls inside the window. Period-based transactions
// pro-rate linearly by day: amount x overlap_days / total_days, zero when
// disjoint. Transactions paid from the project fund contribute nothing.
func (t *Transaction) ContributionWithin(start, end time.Time) decimal.Decimal {
	if t.FromFund {
		return decimal.Zero
	}
	if t.IsPeriodBased() {
		total := valueobject.DaysInclusive(*t.PeriodStart, *t.PeriodEnd)
		if total == 0 {
			return decimal.Zero
		}
		overlap := valueobject.OverlapDays(*t.PeriodStart, *t.PeriodEnd, start, end)
		if overlap == 0 {
			return decimal.Zero
		}
		return t.Amount.
			Mul(decimal.NewFromInt(int64(overlap))).
			Div(decimal.NewFromInt(int64(total)))
	}
	if t.TxDate == nil {
		return decimal.Zero
	}
	d := valueobject.NormalizeDate(*t.TxDate)
	if d.Before(valueobject.NormalizeDate(start)) || d.After(valueobject.NormalizeDate(end)) {
		return decimal.Zero
	}
	return t.Amount
}

// TransactionWithRefs represents a transaction with its resolved references.
type TransactionWithRefs struct {
	Transaction *Transaction
	Category    *Category
	Supplier    *Supplier
	Documents   []*TransactionDocument
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*TransactionWithRefs
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionTotals represents aggregated totals for a set of transactions.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
}
