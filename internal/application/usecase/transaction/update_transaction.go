// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// UpdateTransactionInput represents the input for transaction update.
// Providing TxDate switches the transaction to dated; providing period bounds
// switches it to period-based. The from_fund flag is fixed at creation.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Type          *entity.TransactionType
	Amount        *decimal.Decimal
	TxDate        *time.Time
	PeriodStart   *time.Time
	PeriodEnd     *time.Time
	CategoryID    *uuid.UUID
	ClearCategory bool // Set to true to remove category
	SupplierID    *uuid.UUID
	ClearSupplier bool // Set to true to remove supplier
	IsExceptional *bool
	Notes         *string
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	projectRepo     adapter.ProjectRepository
	categoryRepo    adapter.CategoryRepository
	supplierRepo    adapter.SupplierRepository
	fundRepo        adapter.FundRepository
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	projectRepo adapter.ProjectRepository,
	categoryRepo adapter.CategoryRepository,
	supplierRepo adapter.SupplierRepository,
	fundRepo adapter.FundRepository,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		projectRepo:     projectRepo,
		categoryRepo:    categoryRepo,
		supplierRepo:    supplierRepo,
		fundRepo:        fundRepo,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	// Find the existing transaction
	tx, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	// Check if user is authorized to update this transaction
	if tx.UserID != input.UserID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to update this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	previousAmount := tx.Amount

	// Update fields if provided
	if input.Type != nil {
		if !isValidTransactionType(*input.Type) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionType,
				"transaction type must be 'expense' or 'income'",
				domainerror.ErrInvalidTransactionType,
			)
		}
		tx.Type = *input.Type
	}

	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionAmount,
				"amount must be greater than zero",
				domainerror.ErrInvalidTransactionAmount,
			)
		}
		tx.Amount = *input.Amount
	}

	// Apply schedule changes
	if input.TxDate != nil && (input.PeriodStart != nil || input.PeriodEnd != nil) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDateAndPeriodExclusive,
			"provide either a date or a period, not both",
			domainerror.ErrDateAndPeriodExclusive,
		)
	}
	if input.TxDate != nil {
		d := valueobject.NormalizeDate(*input.TxDate)
		tx.TxDate = &d
		tx.PeriodStart = nil
		tx.PeriodEnd = nil
	}
	if input.PeriodStart != nil || input.PeriodEnd != nil {
		start, end := tx.PeriodStart, tx.PeriodEnd
		if input.PeriodStart != nil {
			d := valueobject.NormalizeDate(*input.PeriodStart)
			start = &d
		}
		if input.PeriodEnd != nil {
			d := valueobject.NormalizeDate(*input.PeriodEnd)
			end = &d
		}
		tx.PeriodStart, tx.PeriodEnd = start, end
		tx.TxDate = nil
	}
	if err := validateSchedule(tx.TxDate, tx.PeriodStart, tx.PeriodEnd); err != nil {
		return nil, err
	}

	// Re-check the date guard against the project's contract start
	project, err := uc.projectRepo.FindByID(ctx, tx.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if err := guardContractStart(tx.TxDate, tx.PeriodStart, project, nil); err != nil {
		return nil, err
	}

	// Handle category update
	var category *entity.Category
	if input.ClearCategory {
		tx.CategoryID = nil
	} else if input.CategoryID != nil {
		cat, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil || cat.UserID != input.UserID {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}
		tx.CategoryID = input.CategoryID
		category = cat
	} else if tx.CategoryID != nil {
		// Load existing category for the supplier rule and the response
		if cat, err := uc.categoryRepo.FindByID(ctx, *tx.CategoryID); err == nil {
			category = cat
		}
	}

	// Handle supplier update
	var supplier *entity.Supplier
	if input.ClearSupplier {
		tx.SupplierID = nil
	} else if input.SupplierID != nil {
		sup, err := uc.supplierRepo.FindByID(ctx, *input.SupplierID)
		if err != nil || sup.UserID != input.UserID {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnSupplierNotFound,
				"supplier not found",
				domainerror.ErrSupplierNotFoundForTransaction,
			)
		}
		tx.SupplierID = input.SupplierID
		supplier = sup
	} else if tx.SupplierID != nil {
		if sup, err := uc.supplierRepo.FindByID(ctx, *tx.SupplierID); err == nil {
			supplier = sup
		}
	}

	// The supplier rule must still hold after the changes
	if err := requireSupplier(tx.Type, tx.FromFund, tx.SupplierID, category); err != nil {
		return nil, err
	}

	if input.IsExceptional != nil {
		tx.IsExceptional = *input.IsExceptional
	}

	if input.Notes != nil {
		if len(*input.Notes) > MaxNotesLength {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeNotesTooLong,
				fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
				domainerror.ErrNotesTooLong,
			)
		}
		tx.Notes = *input.Notes
	}

	// Update timestamp
	tx.UpdatedAt = time.Now().UTC()

	// Save changes
	if err := uc.transactionRepo.Update(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	// Keep the fund in step with an amount change on a fund-paid expense
	if tx.FromFund && !tx.Amount.Equal(previousAmount) {
		if err := uc.adjustFund(ctx, tx, previousAmount); err != nil {
			return nil, err
		}
	}

	return &UpdateTransactionOutput{
		Transaction: toTransactionOutput(tx, category, supplier, nil),
	}, nil
}

// adjustFund records the balance correction when a fund-paid transaction
// changes amount: the original withdrawal took previousAmount, so the fund
// gets previous - new back (negative when the expense grew).
func (uc *UpdateTransactionUseCase) adjustFund(ctx context.Context, tx *entity.Transaction, previousAmount decimal.Decimal) error {
	fund, err := uc.fundRepo.FindByProject(ctx, tx.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to load fund: %w", err)
	}

	movement := entity.NewFundMovement(
		fund.ID,
		entity.FundMovementAdjustment,
		previousAmount.Sub(tx.Amount),
		time.Now().UTC(),
		&tx.ID,
		"withdrawal amount changed",
	)
	if err := uc.fundRepo.CreateMovement(ctx, movement); err != nil {
		return fmt.Errorf("failed to record fund adjustment: %w", err)
	}
	fund.Apply(movement)
	if err := uc.fundRepo.Update(ctx, fund); err != nil {
		return fmt.Errorf("failed to update fund balance: %w", err)
	}
	return nil
}
