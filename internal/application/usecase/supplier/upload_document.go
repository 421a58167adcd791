package supplier

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

// MaxDocumentSizeBytes is the upload limit for supplier documents.
const MaxDocumentSizeBytes = 15 << 20 // 15 MiB

// UploadDocumentInput represents a multipart document upload onto a supplier
// (contract, certificate, insurance proof).
type UploadDocumentInput struct {
	SupplierID  uuid.UUID
	UserID      uuid.UUID
	FileName    string
	ContentType string
	SizeBytes   int64
	Reader      io.Reader
}

// UploadDocumentOutput represents the output of a document upload.
type UploadDocumentOutput struct {
	Document *DocumentOutput
}

// UploadDocumentUseCase stores an uploaded file and links it to a supplier.
type UploadDocumentUseCase struct {
	supplierRepo adapter.SupplierRepository
	storage      adapter.ObjectStorage
}

// NewUploadDocumentUseCase creates a new UploadDocumentUseCase instance.
func NewUploadDocumentUseCase(
	supplierRepo adapter.SupplierRepository,
	storage adapter.ObjectStorage,
) *UploadDocumentUseCase {
	return &UploadDocumentUseCase{
		supplierRepo: supplierRepo,
		storage:      storage,
	}
}

// Execute performs the upload and linkage.
func (uc *UploadDocumentUseCase) Execute(ctx context.Context, input UploadDocumentInput) (*UploadDocumentOutput, error) {
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

	// Find supplier and validate ownership
	supplier, err := uc.supplierRepo.FindByID(ctx, input.SupplierID)
	if err != nil {
		if errors.Is(err, domainerror.ErrSupplierNotFound) {
			return nil, domainerror.NewSupplierError(
				domainerror.ErrCodeSupplierNotFound,
				"supplier not found",
				domainerror.ErrSupplierNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find supplier: %w", err)
	}
	if supplier.UserID != input.UserID {
		return nil, domainerror.NewSupplierError(
			domainerror.ErrCodeNotAuthorizedSupplier,
			"not authorized to modify this supplier",
			domainerror.ErrNotAuthorizedToModifySupplier,
		)
	}

	key := documentKey(supplier.ID, input.FileName)
	if err := uc.storage.Put(ctx, key, input.Reader, input.SizeBytes, input.ContentType); err != nil {
		return nil, domainerror.NewStorageError(
			domainerror.ErrCodeUploadFailed,
			"failed to store document",
			err,
		)
	}

	doc := entity.NewSupplierDocument(supplier.ID, input.FileName, key, input.ContentType, input.SizeBytes)
	if err := uc.supplierRepo.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to link document: %w", err)
	}

	return &UploadDocumentOutput{
		Document: &DocumentOutput{
			ID:          doc.ID,
			FileName:    doc.FileName,
			ContentType: doc.ContentType,
			SizeBytes:   doc.SizeBytes,
			UploadedAt:  doc.UploadedAt,
		},
	}, nil
}

// documentKey builds the storage key for a supplier document.
func documentKey(supplierID uuid.UUID, fileName string) string {
	return fmt.Sprintf("suppliers/%s/%s%s",
		supplierID, uuid.New(), strings.ToLower(path.Ext(fileName)))
}
