// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType represents the kind of transactions a category applies to.
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeBoth    CategoryType = "both"
)

// OtherCategoryName is the name of the fallback category seeded for every
// user at registration. Expenses in this category do not require a supplier.
const OtherCategoryName = "Other"

// Category represents a transaction category.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      CategoryType
	IsActive  bool
	IsOther   bool // The seeded fallback category; relaxes the supplier rule
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewCategory creates a new Category entity.
func NewCategory(userID uuid.UUID, name string, categoryType CategoryType) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Type:      categoryType,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewOtherCategory creates the fallback "Other" category seeded at
// registration.
func NewOtherCategory(userID uuid.UUID) *Category {
	c := NewCategory(userID, OtherCategoryName, CategoryTypeBoth)
	c.IsOther = true
	return c
}
