package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
)

// cachedCategoryRepository decorates a CategoryRepository with read-through
// caching of the per-user list. Writes pass through untouched; the event bus
// invalidates the cached lists after mutations.
type cachedCategoryRepository struct {
	inner adapter.CategoryRepository
	cache adapter.ReferenceCache
	ttl   time.Duration
}

// NewCachedCategoryRepository wraps a category repository with list caching.
func NewCachedCategoryRepository(inner adapter.CategoryRepository, cache adapter.ReferenceCache, ttl time.Duration) adapter.CategoryRepository {
	return &cachedCategoryRepository{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}
}

// FindByUser serves the list from cache when possible, falling through to the
// repository and repopulating on a miss.
func (r *cachedCategoryRepository) FindByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*entity.Category, error) {
	key := categoryListKey(userID, activeOnly)

	if raw, ok := r.cache.Get(ctx, key); ok {
		var categories []*entity.Category
		if err := json.Unmarshal(raw, &categories); err == nil {
			return categories, nil
		}
		// Unreadable entry: drop it and fall through
		_ = r.cache.Invalidate(ctx, key)
	}

	categories, err := r.inner.FindByUser(ctx, userID, activeOnly)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(categories); err == nil {
		_ = r.cache.Set(ctx, key, raw, r.ttl)
	}
	return categories, nil
}

func (r *cachedCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.inner.Create(ctx, category)
}

func (r *cachedCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return r.inner.FindByID(ctx, id)
}

func (r *cachedCategoryRepository) FindOtherByUser(ctx context.Context, userID uuid.UUID) (*entity.Category, error) {
	return r.inner.FindOtherByUser(ctx, userID)
}

func (r *cachedCategoryRepository) ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	return r.inner.ExistsByNameAndUser(ctx, name, userID, excludeID)
}

func (r *cachedCategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return r.inner.Update(ctx, category)
}

func (r *cachedCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.inner.Delete(ctx, id)
}
