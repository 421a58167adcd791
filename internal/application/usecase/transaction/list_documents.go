package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/property-ledger/backend/internal/application/adapter"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// ListDocumentsInput contains the input data for listing transaction documents.
type ListDocumentsInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// ListDocumentsOutput contains the documents attached to a transaction.
type ListDocumentsOutput struct {
	Documents []*DocumentOutput
}

// ListDocumentsUseCase handles listing the documents of a transaction.
type ListDocumentsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListDocumentsUseCase creates a new ListDocumentsUseCase.
func NewListDocumentsUseCase(transactionRepo adapter.TransactionRepository) *ListDocumentsUseCase {
	return &ListDocumentsUseCase{transactionRepo: transactionRepo}
}

// Execute lists the documents attached to a transaction owned by the user.
func (uc *ListDocumentsUseCase) Execute(ctx context.Context, input ListDocumentsInput) (*ListDocumentsOutput, error) {
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

	// 2. Load the attached documents
	documents, err := uc.transactionRepo.FindDocuments(ctx, tx.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction documents: %w", err)
	}

	output := &ListDocumentsOutput{Documents: make([]*DocumentOutput, 0, len(documents))}
	for _, doc := range documents {
		output.Documents = append(output.Documents, &DocumentOutput{
			ID:          doc.ID,
			FileName:    doc.FileName,
			ContentType: doc.ContentType,
			SizeBytes:   doc.SizeBytes,
			UploadedAt:  doc.UploadedAt,
		})
	}

	return output, nil
}
