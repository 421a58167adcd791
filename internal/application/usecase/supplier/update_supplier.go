package supplier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/application/event"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// UpdateSupplierInput represents the input for updating a supplier. Nil
// fields keep their current value.
type UpdateSupplierInput struct {
	SupplierID uuid.UUID
	UserID     uuid.UUID
	Name       *string
	Email      *string
	Phone      *string
	TaxID      *string
	Notes      *string
	IsActive   *bool
}

// UpdateSupplierOutput represents the output of updating a supplier.
type UpdateSupplierOutput struct {
	Supplier *entity.Supplier
}

// UpdateSupplierUseCase handles supplier updates.
type UpdateSupplierUseCase struct {
	supplierRepo adapter.SupplierRepository
	bus          *event.Bus
}

// NewUpdateSupplierUseCase creates a new UpdateSupplierUseCase instance.
func NewUpdateSupplierUseCase(supplierRepo adapter.SupplierRepository, bus *event.Bus) *UpdateSupplierUseCase {
	return &UpdateSupplierUseCase{
		supplierRepo: supplierRepo,
		bus:          bus,
	}
}

// Execute performs the supplier update.
func (uc *UpdateSupplierUseCase) Execute(ctx context.Context, input UpdateSupplierInput) (*UpdateSupplierOutput, error) {
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

	// Apply name change
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewSupplierError(
				domainerror.ErrCodeSupplierNameRequired,
				"supplier name is required",
				domainerror.ErrSupplierNameRequired,
			)
		}
		supplier.Name = name
	}

	// Apply contact detail changes
	if input.Email != nil {
		supplier.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		supplier.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.TaxID != nil {
		supplier.TaxID = strings.TrimSpace(*input.TaxID)
	}
	if input.Notes != nil {
		supplier.Notes = *input.Notes
	}
	if input.IsActive != nil {
		supplier.IsActive = *input.IsActive
	}

	supplier.UpdatedAt = time.Now().UTC()

	// Save changes to database
	if err := uc.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}

	uc.bus.Publish(ctx, event.SuppliersChanged{UserID: input.UserID})

	return &UpdateSupplierOutput{Supplier: supplier}, nil
}
