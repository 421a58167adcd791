package transaction

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/property-ledger/backend/internal/application/adapter"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// DownloadDocumentInput contains the input data for downloading a transaction document.
type DownloadDocumentInput struct {
	TransactionID uuid.UUID
	DocumentID    uuid.UUID
	UserID        uuid.UUID
}

// DownloadDocumentOutput carries the document stream and the metadata the
// caller needs to build the response headers. The caller owns Content and
// must close it.
type DownloadDocumentOutput struct {
	Content     io.ReadCloser
	FileName    string
	ContentType string
	SizeBytes   int64
}

// DownloadDocumentUseCase handles streaming a transaction document from storage.
type DownloadDocumentUseCase struct {
	transactionRepo adapter.TransactionRepository
	storage         adapter.ObjectStorage
}

// NewDownloadDocumentUseCase creates a new DownloadDocumentUseCase.
func NewDownloadDocumentUseCase(
	transactionRepo adapter.TransactionRepository,
	storage adapter.ObjectStorage,
) *DownloadDocumentUseCase {
	return &DownloadDocumentUseCase{
		transactionRepo: transactionRepo,
		storage:         storage,
	}
}

// Execute opens a stream over a document attached to a transaction owned by
// the user.
func (uc *DownloadDocumentUseCase) Execute(ctx context.Context, input DownloadDocumentInput) (*DownloadDocumentOutput, error) {
	// 1. Look up the transaction; hide foreign transactions behind not-found
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
	if tx.UserID != input.UserID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	// 2. Look up the document and make sure it belongs to this transaction
	doc, err := uc.transactionRepo.FindDocumentByID(ctx, input.DocumentID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionDocumentNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionDocumentNotFound,
				"document not found",
				domainerror.ErrTransactionDocumentNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction document: %w", err)
	}
	if doc.TransactionID != tx.ID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionDocumentNotFound,
			"document not found",
			domainerror.ErrTransactionDocumentNotFound,
		)
	}

	// 3. Open the object stream
	content, info, err := uc.storage.Get(ctx, doc.StorageKey)
	if err != nil {
		if errors.Is(err, domainerror.ErrObjectNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionDocumentNotFound,
				"document content is no longer available",
				domainerror.ErrTransactionDocumentNotFound,
			)
		}
		return nil, fmt.Errorf("failed to open document stream: %w", err)
	}

	output := &DownloadDocumentOutput{
		Content:     content,
		FileName:    doc.FileName,
		ContentType: doc.ContentType,
		SizeBytes:   doc.SizeBytes,
	}
	if info != nil && info.SizeBytes > 0 {
		output.SizeBytes = info.SizeBytes
	}

	return output, nil
}
