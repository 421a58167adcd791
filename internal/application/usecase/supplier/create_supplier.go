// Package supplier contains supplier-related use cases.
package supplier

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/application/event"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// CreateSupplierInput represents the input for supplier creation.
type CreateSupplierInput struct {
	UserID uuid.UUID
	Name   string
	Email  string
	Phone  string
	TaxID  string
	Notes  string
}

// CreateSupplierOutput represents the output of supplier creation.
type CreateSupplierOutput struct {
	Supplier *entity.Supplier
}

// CreateSupplierUseCase handles supplier creation logic.
type CreateSupplierUseCase struct {
	supplierRepo adapter.SupplierRepository
	bus          *event.Bus
}

// NewCreateSupplierUseCase creates a new CreateSupplierUseCase instance.
func NewCreateSupplierUseCase(supplierRepo adapter.SupplierRepository, bus *event.Bus) *CreateSupplierUseCase {
	return &CreateSupplierUseCase{
		supplierRepo: supplierRepo,
		bus:          bus,
	}
}

// Execute performs the supplier creation.
func (uc *CreateSupplierUseCase) Execute(ctx context.Context, input CreateSupplierInput) (*CreateSupplierOutput, error) {
	// Validate name
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewSupplierError(
			domainerror.ErrCodeSupplierNameRequired,
			"supplier name is required",
			domainerror.ErrSupplierNameRequired,
		)
	}

	// Create supplier entity
	supplier := entity.NewSupplier(
		input.UserID,
		name,
		strings.TrimSpace(input.Email),
		strings.TrimSpace(input.Phone),
		strings.TrimSpace(input.TaxID),
		input.Notes,
	)

	// Save supplier to database
	if err := uc.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}

	uc.bus.Publish(ctx, event.SuppliersChanged{UserID: input.UserID})

	return &CreateSupplierOutput{Supplier: supplier}, nil
}
