// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// DeleteTransactionUseCase handles transaction deletion logic.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	fundRepo        adapter.FundRepository
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	fundRepo adapter.FundRepository,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		fundRepo:        fundRepo,
	}
}

// Execute performs the transaction deletion. Deleting a fund-paid expense
// returns its amount to the fund.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	tx, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return fmt.Errorf("failed to find transaction: %w", err)
	}

	if tx.UserID != input.UserID {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to delete this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	if err := uc.transactionRepo.Delete(ctx, tx.ID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if tx.FromFund {
		if err := uc.reverseWithdrawal(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}

// reverseWithdrawal credits the withdrawn amount back to the fund.
func (uc *DeleteTransactionUseCase) reverseWithdrawal(ctx context.Context, tx *entity.Transaction) error {
	fund, err := uc.fundRepo.FindByProject(ctx, tx.ProjectID)
	if err != nil {
		if errors.Is(err, domainerror.ErrFundNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load fund: %w", err)
	}

	movement := entity.NewFundMovement(
		fund.ID,
		entity.FundMovementAdjustment,
		tx.Amount,
		time.Now().UTC(),
		&tx.ID,
		"fund-paid transaction deleted",
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
