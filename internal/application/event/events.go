package event

import "github.com/google/uuid"

// Event names.
const (
	NameCategoriesChanged = "categories.changed"
	NameSuppliersChanged  = "suppliers.changed"
	NameProjectDeleted    = "project.deleted"
)

// CategoriesChanged is published after any category mutation for a user.
type CategoriesChanged struct {
	UserID uuid.UUID
}

// Name implements Event.
func (CategoriesChanged) Name() string { return NameCategoriesChanged }

// SuppliersChanged is published after any supplier mutation for a user.
type SuppliersChanged struct {
	UserID uuid.UUID
}

// Name implements Event.
func (SuppliersChanged) Name() string { return NameSuppliersChanged }

// ProjectDeleted is published after a project hard delete completes.
type ProjectDeleted struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
}

// Name implements Event.
func (ProjectDeleted) Name() string { return NameProjectDeleted }
