// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"errors"
	"time"
)

// ErrLockNotObtained is returned when another holder owns the lock.
var ErrLockNotObtained = errors.New("lock not obtained")

// Lock represents a held distributed lock.
type Lock interface {
	// Release releases the lock. Releasing an expired lock is not an error.
	Release(ctx context.Context) error
}

// LockService defines the interface for cross-instance mutual exclusion.
// Scheduled jobs obtain a lock before running so only one instance generates
// recurring transactions or accrues funds.
type LockService interface {
	// Obtain acquires the named lock for at most ttl. Returns
	// ErrLockNotObtained when the lock is already held.
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error)
}
