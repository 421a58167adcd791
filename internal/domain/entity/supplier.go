// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Supplier represents a vendor or service provider that expenses are
// attributed to.
type Supplier struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Email     string
	Phone     string
	TaxID     string
	Notes     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewSupplier creates a new Supplier entity.
func NewSupplier(userID uuid.UUID, name, email, phone, taxID, notes string) *Supplier {
	now := time.Now().UTC()

	return &Supplier{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Email:     email,
		Phone:     phone,
		TaxID:     taxID,
		Notes:     notes,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
