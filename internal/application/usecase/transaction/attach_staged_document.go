// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// AttachStagedDocumentInput links a previously staged upload to a
// transaction. StagingKey comes from the uploads endpoint.
type AttachStagedDocumentInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	StagingKey    string
	FileName      string
}

// AttachStagedDocumentOutput represents the output of a staged attach.
type AttachStagedDocumentOutput struct {
	Document *DocumentOutput
}

// AttachStagedDocumentUseCase moves a staged object into the transaction's
// document space and links it. Storage may not expose a freshly staged object
// immediately, so the stat runs under the attachment retry policy.
type AttachStagedDocumentUseCase struct {
	transactionRepo adapter.TransactionRepository
	storage         adapter.ObjectStorage
	retry           valueobject.RetryPolicy
}

// NewAttachStagedDocumentUseCase creates a new AttachStagedDocumentUseCase instance.
func NewAttachStagedDocumentUseCase(
	transactionRepo adapter.TransactionRepository,
	storage adapter.ObjectStorage,
) *AttachStagedDocumentUseCase {
	return &AttachStagedDocumentUseCase{
		transactionRepo: transactionRepo,
		storage:         storage,
		retry: valueobject.DefaultAttachmentRetryPolicy(func(err error) bool {
			return errors.Is(err, domainerror.ErrObjectNotFound)
		}),
	}
}

// Execute performs the staged attach.
func (uc *AttachStagedDocumentUseCase) Execute(ctx context.Context, input AttachStagedDocumentInput) (*AttachStagedDocumentOutput, error) {
	tx, err := uc.findOwnedTransaction(ctx, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}

	// Staged keys are confined to the staging namespace
	if !adapter.IsStagingKey(input.StagingKey) {
		return nil, domainerror.NewStorageError(
			domainerror.ErrCodeObjectNotFound,
			"staged object not found",
			domainerror.ErrObjectNotFound,
		)
	}

	var info *adapter.ObjectInfo
	err = uc.retry.Do(ctx, func() error {
		var statErr error
		info, statErr = uc.storage.Stat(ctx, input.StagingKey)
		return statErr
	})
	if err != nil {
		if errors.Is(err, domainerror.ErrObjectNotFound) {
			return nil, domainerror.NewStorageError(
				domainerror.ErrCodeObjectNotFound,
				"staged object not found",
				domainerror.ErrObjectNotFound,
			)
		}
		return nil, fmt.Errorf("failed to stat staged object: %w", err)
	}

	key := documentKey(tx.ID, input.FileName)
	if err := uc.storage.Copy(ctx, input.StagingKey, key); err != nil {
		return nil, fmt.Errorf("failed to move staged object: %w", err)
	}
	if err := uc.storage.Delete(ctx, input.StagingKey); err != nil {
		// The copy landed; a leftover staging object is harmless
		slog.Warn("failed to delete staged object", "key", input.StagingKey, "error", err)
	}

	doc := entity.NewTransactionDocument(tx.ID, input.FileName, key, info.ContentType, info.SizeBytes)
	if err := uc.transactionRepo.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to link document: %w", err)
	}

	return &AttachStagedDocumentOutput{
		Document: &DocumentOutput{
			ID:          doc.ID,
			FileName:    doc.FileName,
			ContentType: doc.ContentType,
			SizeBytes:   doc.SizeBytes,
			UploadedAt:  doc.UploadedAt,
		},
	}, nil
}

func (uc *AttachStagedDocumentUseCase) findOwnedTransaction(ctx context.Context, transactionID, userID uuid.UUID) (*entity.Transaction, error) {
	tx, err := uc.transactionRepo.FindByID(ctx, transactionID)
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
	if tx.UserID != userID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to modify this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}
	return tx, nil
}
