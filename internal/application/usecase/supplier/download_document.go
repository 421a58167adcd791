package supplier

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// DownloadDocumentInput contains the input data for downloading a supplier document.
type DownloadDocumentInput struct {
	SupplierID uuid.UUID
	DocumentID uuid.UUID
	UserID     uuid.UUID
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

// DownloadDocumentUseCase handles streaming a supplier document from storage.
type DownloadDocumentUseCase struct {
	supplierRepo adapter.SupplierRepository
	storage      adapter.ObjectStorage
}

// NewDownloadDocumentUseCase creates a new DownloadDocumentUseCase instance.
func NewDownloadDocumentUseCase(
	supplierRepo adapter.SupplierRepository,
	storage adapter.ObjectStorage,
) *DownloadDocumentUseCase {
	return &DownloadDocumentUseCase{
		supplierRepo: supplierRepo,
		storage:      storage,
	}
}

// Execute opens a stream over a document attached to a supplier owned by the
// user.
func (uc *DownloadDocumentUseCase) Execute(ctx context.Context, input DownloadDocumentInput) (*DownloadDocumentOutput, error) {
	supplier, err := findOwnedSupplier(ctx, uc.supplierRepo, input.SupplierID, input.UserID)
	if err != nil {
		return nil, err
	}

	// Look up the document and make sure it belongs to this supplier
	doc, err := uc.supplierRepo.FindDocumentByID(ctx, input.DocumentID)
	if err != nil {
		if errors.Is(err, domainerror.ErrSupplierDocumentNotFound) {
			return nil, domainerror.NewSupplierError(
				domainerror.ErrCodeSupplierDocumentNotFound,
				"document not found",
				domainerror.ErrSupplierDocumentNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find supplier document: %w", err)
	}
	if doc.SupplierID != supplier.ID {
		return nil, domainerror.NewSupplierError(
			domainerror.ErrCodeSupplierDocumentNotFound,
			"document not found",
			domainerror.ErrSupplierDocumentNotFound,
		)
	}

	// Open the object stream
	content, info, err := uc.storage.Get(ctx, doc.StorageKey)
	if err != nil {
		if errors.Is(err, domainerror.ErrObjectNotFound) {
			return nil, domainerror.NewSupplierError(
				domainerror.ErrCodeSupplierDocumentNotFound,
				"document content is no longer available",
				domainerror.ErrSupplierDocumentNotFound,
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
