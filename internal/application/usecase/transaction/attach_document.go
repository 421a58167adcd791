// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// MaxDocumentSizeBytes is the upload limit for transaction documents.
const MaxDocumentSizeBytes = 15 << 20 // 15 MiB

// AttachDocumentInput represents a direct multipart document upload onto a
// transaction.
type AttachDocumentInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	FileName      string
	ContentType   string
	SizeBytes     int64
	Reader        io.Reader
}

// AttachDocumentOutput represents the output of a document upload.
type AttachDocumentOutput struct {
	Document *DocumentOutput
}

// AttachDocumentUseCase stores an uploaded file and links it to a transaction.
type AttachDocumentUseCase struct {
	transactionRepo adapter.TransactionRepository
	storage         adapter.ObjectStorage
}

// NewAttachDocumentUseCase creates a new AttachDocumentUseCase instance.
func NewAttachDocumentUseCase(
	transactionRepo adapter.TransactionRepository,
	storage adapter.ObjectStorage,
) *AttachDocumentUseCase {
	return &AttachDocumentUseCase{
		transactionRepo: transactionRepo,
		storage:         storage,
	}
}

// Execute performs the upload and linkage.
func (uc *AttachDocumentUseCase) Execute(ctx context.Context, input AttachDocumentInput) (*AttachDocumentOutput, error) {
	if input.SizeBytes <= 0 {
		return nil, domainerror.NewStorageError(
			domainerror.ErrCodeEmptyUpload,
			"uploaded file is empty",
			domainerror.ErrEmptyUpload,
		)
	}
	if input.SizeBytes > MaxDocumentSizeBytes {
		return nil, domainerror.NewStorageError(
			domainerror.ErrCodeUploadTooLarge,
			"uploaded file exceeds the size limit",
			domainerror.ErrUploadTooLarge,
		)
	}

	tx, err := uc.findOwnedTransaction(ctx, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}

	key := documentKey(tx.ID, input.FileName)
	if err := uc.storage.Put(ctx, key, input.Reader, input.SizeBytes, input.ContentType); err != nil {
		return nil, domainerror.NewStorageError(
			domainerror.ErrCodeUploadFailed,
			"failed to store document",
			err,
		)
	}

	doc := entity.NewTransactionDocument(tx.ID, input.FileName, key, input.ContentType, input.SizeBytes)
	if err := uc.transactionRepo.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to link document: %w", err)
	}

	return &AttachDocumentOutput{
		Document: &DocumentOutput{
			ID:          doc.ID,
			FileName:    doc.FileName,
			ContentType: doc.ContentType,
			SizeBytes:   doc.SizeBytes,
			UploadedAt:  doc.UploadedAt,
		},
	}, nil
}

func (uc *AttachDocumentUseCase) findOwnedTransaction(ctx context.Context, transactionID, userID uuid.UUID) (*entity.Transaction, error) {
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

// documentKey builds the storage key for a transaction document.
func documentKey(transactionID uuid.UUID, fileName string) string {
	return fmt.Sprintf("transactions/%s/%s%s",
		transactionID, uuid.New(), strings.ToLower(path.Ext(fileName)))
}
