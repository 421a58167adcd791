// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FundMovementKind classifies a fund movement.
type FundMovementKind string

const (
	FundMovementAccrual    FundMovementKind = "accrual"
	FundMovementWithdrawal FundMovementKind = "withdrawal"
	FundMovementAdjustment FundMovementKind = "adjustment"
)

// Fund represents a project's cash reserve. The monthly amount accrues once
// per calendar month; transactions flagged from_fund withdraw from it. The
// balance is allowed to go negative.
type Fund struct {
	ID                uuid.UUID
	ProjectID         uuid.UUID
	Balance           decimal.Decimal
	MonthlyAmount     decimal.Decimal
	LastAccruedPeriod string // YYYY-MM of the most recent accrual
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewFund creates a new Fund entity with a zero balance.
func NewFund(projectID uuid.UUID, monthlyAmount decimal.Decimal) *Fund {
	now := time.Now().UTC()

	return &Fund{
		ID:            uuid.New(),
		ProjectID:     projectID,
		Balance:       decimal.Zero,
		MonthlyAmount: monthlyAmount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsNegative returns true when the fund balance is below zero.
func (f *Fund) IsNegative() bool {
	return f.Balance.IsNegative()
}

// Apply adjusts the balance by the movement's signed amount.
func (f *Fund) Apply(m *FundMovement) {
	f.Balance = f.Balance.Add(m.Amount)
	f.UpdatedAt = time.Now().UTC()
}

// FundMovement represents one change to a fund balance. Amount is signed:
// accruals are positive, withdrawals negative.
type FundMovement struct {
	ID            uuid.UUID
	FundID        uuid.UUID
	Kind          FundMovementKind
	Amount        decimal.Decimal
	OccurredOn    time.Time
	TransactionID *uuid.UUID // Set for withdrawals driven by a transaction
	Note          string
	CreatedAt     time.Time
}

// NewFundMovement creates a new FundMovement entity.
func NewFundMovement(fundID uuid.UUID, kind FundMovementKind, amount decimal.Decimal, occurredOn time.Time, transactionID *uuid.UUID, note string) *FundMovement {
	return &FundMovement{
		ID:            uuid.New(),
		FundID:        fundID,
		Kind:          kind,
		Amount:        amount,
		OccurredOn:    occurredOn,
		TransactionID: transactionID,
		Note:          note,
		CreatedAt:     time.Now().UTC(),
	}
}

// FundMovementListResult represents the result of listing fund movements.
type FundMovementListResult struct {
	Movements  []*FundMovement
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}
