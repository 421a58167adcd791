package supplier

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
)

// ListSuppliersInput represents the input for listing suppliers.
type ListSuppliersInput struct {
	UserID     uuid.UUID
	ActiveOnly bool
}

// ListSuppliersOutput represents the output of listing suppliers.
type ListSuppliersOutput struct {
	Suppliers []*entity.Supplier
}

// ListSuppliersUseCase handles listing suppliers logic.
type ListSuppliersUseCase struct {
	supplierRepo adapter.SupplierRepository
}

// NewListSuppliersUseCase creates a new ListSuppliersUseCase instance.
func NewListSuppliersUseCase(supplierRepo adapter.SupplierRepository) *ListSuppliersUseCase {
	return &ListSuppliersUseCase{supplierRepo: supplierRepo}
}

// Execute performs the supplier listing.
func (uc *ListSuppliersUseCase) Execute(ctx context.Context, input ListSuppliersInput) (*ListSuppliersOutput, error) {
	suppliers, err := uc.supplierRepo.FindByUser(ctx, input.UserID, input.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}

	return &ListSuppliersOutput{Suppliers: suppliers}, nil
}
