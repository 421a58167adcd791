package cache

import (
	"context"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/application/event"
)

// RegisterInvalidation subscribes cache eviction to the reference-data change
// events. Both list variants are dropped so the next read repopulates.
func RegisterInvalidation(bus *event.Bus, cache adapter.ReferenceCache) {
	bus.Subscribe(event.NameCategoriesChanged, func(ctx context.Context, e event.Event) error {
		changed, ok := e.(event.CategoriesChanged)
		if !ok {
			return nil
		}
		return cache.Invalidate(ctx,
			categoryListKey(changed.UserID, true),
			categoryListKey(changed.UserID, false),
		)
	})

	bus.Subscribe(event.NameSuppliersChanged, func(ctx context.Context, e event.Event) error {
		changed, ok := e.(event.SuppliersChanged)
		if !ok {
			return nil
		}
		return cache.Invalidate(ctx,
			supplierListKey(changed.UserID, true),
			supplierListKey(changed.UserID, false),
		)
	})
}
