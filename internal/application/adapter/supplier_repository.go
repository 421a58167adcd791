// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/domain/entity"
)

// SupplierRepository defines the interface for supplier persistence operations.
type SupplierRepository interface {
	// Create creates a new supplier in the database.
	Create(ctx context.Context, supplier *entity.Supplier) error

	// FindByID retrieves a supplier by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)

	// FindByUser retrieves the suppliers of a user ordered by name. When
	// activeOnly is true inactive suppliers are skipped.
	FindByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*entity.Supplier, error)

	// Update updates an existing supplier in the database.
	Update(ctx context.Context, supplier *entity.Supplier) error

	// Delete soft-deletes a supplier from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateDocument attaches a document row to a supplier.
	CreateDocument(ctx context.Context, doc *entity.SupplierDocument) error

	// FindDocuments lists the documents of a supplier.
	FindDocuments(ctx context.Context, supplierID uuid.UUID) ([]*entity.SupplierDocument, error)

	// FindDocumentByID retrieves a single supplier document.
	FindDocumentByID(ctx context.Context, id uuid.UUID) (*entity.SupplierDocument, error)
}
