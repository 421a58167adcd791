// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/domain/entity"
)

// EmailQueueRepository persists the outbound email queue the worker drains.
type EmailQueueRepository interface {
	// Create enqueues a new email job.
	Create(ctx context.Context, job *entity.EmailJob) error

	// GetPendingJobs returns due jobs ordered by scheduled time.
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error)

	// Update saves a job's delivery state.
	Update(ctx context.Context, job *entity.EmailJob) error

	// GetByID looks a job up by id.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error)

	// GetByRecipient lists the jobs addressed to an email, newest first.
	GetByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error)

	// DeleteOldSentJobs prunes delivered jobs older than the given age.
	DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error)
}
