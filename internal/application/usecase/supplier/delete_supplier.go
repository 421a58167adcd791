package supplier

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/application/event"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// DeleteSupplierInput represents the input for deleting a supplier.
type DeleteSupplierInput struct {
	SupplierID uuid.UUID
	UserID     uuid.UUID
}

// DeleteSupplierUseCase handles supplier deletion. Transactions keep their
// supplier reference through the soft delete.
type DeleteSupplierUseCase struct {
	supplierRepo adapter.SupplierRepository
	bus          *event.Bus
}

// NewDeleteSupplierUseCase creates a new DeleteSupplierUseCase instance.
func NewDeleteSupplierUseCase(supplierRepo adapter.SupplierRepository, bus *event.Bus) *DeleteSupplierUseCase {
	return &DeleteSupplierUseCase{
		supplierRepo: supplierRepo,
		bus:          bus,
	}
}

// Execute performs the supplier deletion.
func (uc *DeleteSupplierUseCase) Execute(ctx context.Context, input DeleteSupplierInput) error {
	// Find supplier and validate ownership
	supplier, err := uc.supplierRepo.FindByID(ctx, input.SupplierID)
	if err != nil {
		if errors.Is(err, domainerror.ErrSupplierNotFound) {
			return domainerror.NewSupplierError(
				domainerror.ErrCodeSupplierNotFound,
				"supplier not found",
				domainerror.ErrSupplierNotFound,
			)
		}
		return fmt.Errorf("failed to find supplier: %w", err)
	}
	if supplier.UserID != input.UserID {
		return domainerror.NewSupplierError(
			domainerror.ErrCodeNotAuthorizedSupplier,
			"not authorized to modify this supplier",
			domainerror.ErrNotAuthorizedToModifySupplier,
		)
	}

	// Delete supplier from database
	if err := uc.supplierRepo.Delete(ctx, supplier.ID); err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}

	uc.bus.Publish(ctx, event.SuppliersChanged{UserID: input.UserID})

	return nil
}
