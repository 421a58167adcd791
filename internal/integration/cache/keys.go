package cache

import (
	"fmt"

	"github.com/google/uuid"
)

// Cache keys are per user and per list variant so one user's mutation never
// evicts another's entries.

func categoryListKey(userID uuid.UUID, activeOnly bool) string {
	return fmt.Sprintf("refcache:categories:%s:%s", userID, listVariant(activeOnly))
}

func supplierListKey(userID uuid.UUID, activeOnly bool) string {
	return fmt.Sprintf("refcache:suppliers:%s:%s", userID, listVariant(activeOnly))
}

func listVariant(activeOnly bool) string {
	if activeOnly {
		return "active"
	}
	return "all"
}
