package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
)

// cachedSupplierRepository decorates a SupplierRepository with read-through
// caching of the per-user list, mirroring the category decorator.
type cachedSupplierRepository struct {
	inner adapter.SupplierRepository
	cache adapter.ReferenceCache
	ttl   time.Duration
}

// NewCachedSupplierRepository wraps a supplier repository with list caching.
func NewCachedSupplierRepository(inner adapter.SupplierRepository, cache adapter.ReferenceCache, ttl time.Duration) adapter.SupplierRepository {
	return &cachedSupplierRepository{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}
}

// FindByUser serves the list from cache when possible, falling through to the
// repository and repopulating on a miss.
func (r *cachedSupplierRepository) FindByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*entity.Supplier, error) {
	key := supplierListKey(userID, activeOnly)

	if raw, ok := r.cache.Get(ctx, key); ok {
		var suppliers []*entity.Supplier
		if err := json.Unmarshal(raw, &suppliers); err == nil {
			return suppliers, nil
		}
		_ = r.cache.Invalidate(ctx, key)
	}

	suppliers, err := r.inner.FindByUser(ctx, userID, activeOnly)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(suppliers); err == nil {
		_ = r.cache.Set(ctx, key, raw, r.ttl)
	}
	return suppliers, nil
}

func (r *cachedSupplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return r.inner.Create(ctx, supplier)
}

func (r *cachedSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	return r.inner.FindByID(ctx, id)
}

func (r *cachedSupplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return r.inner.Update(ctx, supplier)
}

func (r *cachedSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.inner.Delete(ctx, id)
}

func (r *cachedSupplierRepository) CreateDocument(ctx context.Context, doc *entity.SupplierDocument) error {
	return r.inner.CreateDocument(ctx, doc)
}

func (r *cachedSupplierRepository) FindDocuments(ctx context.Context, supplierID uuid.UUID) ([]*entity.SupplierDocument, error) {
	return r.inner.FindDocuments(ctx, supplierID)
}

func (r *cachedSupplierRepository) FindDocumentByID(ctx context.Context, id uuid.UUID) (*entity.SupplierDocument, error) {
	return r.inner.FindDocumentByID(ctx, id)
}
