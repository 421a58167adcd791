package supplier

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// GetSupplierInput represents the input for retrieving a supplier.
type GetSupplierInput struct {
	SupplierID uuid.UUID
	UserID     uuid.UUID
}

// GetSupplierOutput represents the output of retrieving a supplier.
type GetSupplierOutput struct {
	Supplier *entity.Supplier
}

// GetSupplierUseCase handles retrieving a single supplier.
type GetSupplierUseCase struct {
	supplierRepo adapter.SupplierRepository
}

// NewGetSupplierUseCase creates a new GetSupplierUseCase instance.
func NewGetSupplierUseCase(supplierRepo adapter.SupplierRepository) *GetSupplierUseCase {
	return &GetSupplierUseCase{supplierRepo: supplierRepo}
}

// Execute retrieves a supplier owned by the user.
func (uc *GetSupplierUseCase) Execute(ctx context.Context, input GetSupplierInput) (*GetSupplierOutput, error) {
	supplier, err := findOwnedSupplier(ctx, uc.supplierRepo, input.SupplierID, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetSupplierOutput{Supplier: supplier}, nil
}

// findOwnedSupplier loads a supplier for a read. Suppliers of other users are
// reported as not found rather than as an authorization failure.
func findOwnedSupplier(ctx context.Context, repo adapter.SupplierRepository, supplierID, userID uuid.UUID) (*entity.Supplier, error) {
	supplier, err := repo.FindByID(ctx, supplierID)
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
	if supplier.UserID != userID {
		return nil, domainerror.NewSupplierError(
			domainerror.ErrCodeSupplierNotFound,
			"supplier not found",
			domainerror.ErrSupplierNotFound,
		)
	}
	return supplier, nil
}
