// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/property-ledger/backend/internal/application/adapter"
)

// redisLockService implements the adapter.LockService interface on redislock.
type redisLockService struct {
	locker *redislock.Client
}

// NewRedisLockService creates a Redis-backed distributed lock service.
func NewRedisLockService(client *redis.Client) adapter.LockService {
	return &redisLockService{
		locker: redislock.New(client),
	}
}

// Obtain acquires the named lock for at most ttl.
func (s *redisLockService) Obtain(ctx context.Context, key string, ttl time.Duration) (adapter.Lock, error) {
	lock, err := s.locker.Obtain(ctx, key, ttl, nil)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, adapter.ErrLockNotObtained
		}
		return nil, err
	}
	return &redisLock{lock: lock}, nil
}

// redisLock wraps a held redislock lock.
type redisLock struct {
	lock *redislock.Lock
}

// Release releases the lock. A lock that already expired is treated as
// released.
func (l *redisLock) Release(ctx context.Context) error {
	err := l.lock.Release(ctx)
	if err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
		return err
	}
	return nil
}
