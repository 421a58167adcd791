// Package valueobject contains domain value objects for the Property Ledger system.
package valueobject

import (
	"context"
	"time"
)

// RetryPolicy describes how an operation is retried: how many attempts, the
// fixed delay between them, and which errors are worth retrying at all.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	Retryable   func(error) bool
}

// DefaultAttachmentRetryPolicy is the policy used when linking staged uploads
// to created transactions: storage may not expose a freshly staged object
// immediately, so the attach is retried a few times on that condition only.
func DefaultAttachmentRetryPolicy(retryable func(error) bool) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Delay:       200 * time.Millisecond,
		Retryable:   retryable,
	}
}

// Do runs fn under the policy. It stops on the first success, on a
// non-retryable error, when attempts are exhausted, or when the context is
// cancelled. The last error is returned.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(lastErr) {
			return lastErr
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Delay):
		}
	}
	return lastErr
}
