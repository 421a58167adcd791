package supplier

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/property-ledger/backend/internal/application/adapter"
)

// ListDocumentsInput contains the input data for listing supplier documents.
type ListDocumentsInput struct {
	SupplierID uuid.UUID
	UserID     uuid.UUID
}

// DocumentOutput describes a stored supplier document.
type DocumentOutput struct {
	ID          uuid.UUID
	FileName    string
	ContentType string
	SizeBytes   int64
	UploadedAt  time.Time
}

// ListDocumentsOutput contains the documents attached to a supplier.
type ListDocumentsOutput struct {
	Documents []*DocumentOutput
}

// ListDocumentsUseCase handles listing the documents of a supplier.
type ListDocumentsUseCase struct {
	supplierRepo adapter.SupplierRepository
}

// NewListDocumentsUseCase creates a new ListDocumentsUseCase instance.
func NewListDocumentsUseCase(supplierRepo adapter.SupplierRepository) *ListDocumentsUseCase {
	return &ListDocumentsUseCase{supplierRepo: supplierRepo}
}

// Execute lists the documents attached to a supplier owned by the user.
func (uc *ListDocumentsUseCase) Execute(ctx context.Context, input ListDocumentsInput) (*ListDocumentsOutput, error) {
	supplier, err := findOwnedSupplier(ctx, uc.supplierRepo, input.SupplierID, input.UserID)
	if err != nil {
		return nil, err
	}

	documents, err := uc.supplierRepo.FindDocuments(ctx, supplier.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list supplier documents: %w", err)
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
