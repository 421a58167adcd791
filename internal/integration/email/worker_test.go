package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/integration/email/templates"
)

// fakeQueue is an in-memory EmailQueueRepository that mirrors the
// pending/scheduled_at filtering of the persistence implementation.
type fakeQueue struct {
	jobs        []*entity.EmailJob
	transitions []entity.EmailStatus
}

func (q *fakeQueue) Create(ctx context.Context, job *entity.EmailJob) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *fakeQueue) GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error) {
	now := time.Now().UTC()
	ready := make([]*entity.EmailJob, 0, len(q.jobs))
	for _, job := range q.jobs {
		if job.Status == entity.EmailStatusPending && !job.ScheduledAt.After(now) {
			ready = append(ready, job)
			if len(ready) == limit {
				break
			}
		}
	}
	return ready, nil
}

func (q *fakeQueue) Update(ctx context.Context, job *entity.EmailJob) error {
	q.transitions = append(q.transitions, job.Status)
	return nil
}

func (q *fakeQueue) GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	for _, job := range q.jobs {
		if job.ID == id {
			return job, nil
		}
	}
	return nil, errors.New("email job not found")
}

func (q *fakeQueue) GetByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error) {
	matches := make([]*entity.EmailJob, 0)
	for _, job := range q.jobs {
		if job.RecipientEmail == email {
			matches = append(matches, job)
		}
	}
	return matches, nil
}

func (q *fakeQueue) DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error) {
	return 0, nil
}

var _ adapter.EmailQueueRepository = (*fakeQueue)(nil)

func newTestWorker(t *testing.T) (*Worker, *fakeQueue, *MockEmailSender) {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	queue := &fakeQueue{}
	sender := NewMockEmailSender()
	return NewWorker(queue, sender, renderer, DefaultWorkerConfig()), queue, sender
}

func passwordResetJob(recipient, name string) *entity.EmailJob {
	return entity.NewEmailJob(entity.TemplatePasswordReset, recipient, name, "Reset your password", map[string]interface{}{
		"user_name":  name,
		"reset_url":  "https://app.property-ledger.example/reset-password?token=tok123",
		"expires_in": "30 minutes",
	})
}

func TestWorkerProcessNow(t *testing.T) {
	ctx := context.Background()

	t.Run("sends a pending job and marks it sent", func(t *testing.T) {
		worker, queue, sender := newTestWorker(t)
		job := passwordResetJob("dana@example.com", "Dana")
		queue.Create(ctx, job)

		worker.ProcessNow(ctx)

		if job.Status != entity.EmailStatusSent {
			t.Fatalf("expected status %q, got %q (last error: %s)", entity.EmailStatusSent, job.Status, job.LastError)
		}
		if job.ResendID != "mock-1" {
			t.Errorf("expected resend ID mock-1, got %q", job.ResendID)
		}
		if job.ProcessedAt == nil {
			t.Error("expected processed_at to be set")
		}
		if len(sender.SentEmails) != 1 {
			t.Fatalf("expected 1 sent email, got %d", len(sender.SentEmails))
		}

		sent := sender.SentEmails[0]
		if sent.To != "dana@example.com" {
			t.Errorf("expected recipient dana@example.com, got %q", sent.To)
		}
		if sent.Subject != "Reset your password" {
			t.Errorf("expected subject %q, got %q", "Reset your password", sent.Subject)
		}
		if !strings.Contains(sent.HTML, "Hi Dana,") {
			t.Error("expected HTML body to greet the recipient by name")
		}
		if !strings.Contains(sent.HTML, "https://app.property-ledger.example/reset-password?token=tok123") {
			t.Error("expected HTML body to contain the reset URL")
		}
		if !strings.Contains(sent.Text, "Hi Dana,") {
			t.Error("expected text body to greet the recipient by name")
		}

		want := []entity.EmailStatus{entity.EmailStatusProcessing, entity.EmailStatusSent}
		if len(queue.transitions) != len(want) {
			t.Fatalf("expected transitions %v, got %v", want, queue.transitions)
		}
		for i, status := range want {
			if queue.transitions[i] != status {
				t.Errorf("transition %d: expected %q, got %q", i, status, queue.transitions[i])
			}
		}
	})

	t.Run("temporary failure schedules a retry", func(t *testing.T) {
		worker, queue, sender := newTestWorker(t)
		sender.SetFailure(errors.New("503 service unavailable"), false)
		job := passwordResetJob("dana@example.com", "Dana")
		queue.Create(ctx, job)

		worker.ProcessNow(ctx)

		if job.Status != entity.EmailStatusPending {
			t.Errorf("expected status %q, got %q", entity.EmailStatusPending, job.Status)
		}
		if job.Attempts != 1 {
			t.Errorf("expected 1 attempt, got %d", job.Attempts)
		}
		if job.LastError == "" {
			t.Error("expected last error to be recorded")
		}
		if !job.ScheduledAt.After(time.Now().UTC()) {
			t.Errorf("expected retry to be scheduled in the future, got %s", job.ScheduledAt)
		}
		if len(sender.SentEmails) != 0 {
			t.Errorf("expected no sent emails, got %d", len(sender.SentEmails))
		}
	})

	t.Run("permanent failure marks the job failed", func(t *testing.T) {
		worker, queue, sender := newTestWorker(t)
		sender.SetFailure(errors.New("422 validation failed"), true)
		job := passwordResetJob("dana@example.com", "Dana")
		queue.Create(ctx, job)

		worker.ProcessNow(ctx)

		if job.Status != entity.EmailStatusFailed {
			t.Errorf("expected status %q, got %q", entity.EmailStatusFailed, job.Status)
		}
		if job.Attempts != 1 {
			t.Errorf("expected 1 attempt, got %d", job.Attempts)
		}
		if job.ProcessedAt == nil {
			t.Error("expected processed_at to be set")
		}
	})

	t.Run("failure on the last attempt is final", func(t *testing.T) {
		worker, queue, sender := newTestWorker(t)
		sender.SetFailure(errors.New("503 service unavailable"), false)
		job := passwordResetJob("dana@example.com", "Dana")
		job.Attempts = job.MaxAttempts - 1
		queue.Create(ctx, job)

		worker.ProcessNow(ctx)

		if job.Status != entity.EmailStatusFailed {
			t.Errorf("expected status %q, got %q", entity.EmailStatusFailed, job.Status)
		}
		if job.Attempts != job.MaxAttempts {
			t.Errorf("expected %d attempts, got %d", job.MaxAttempts, job.Attempts)
		}
	})

	t.Run("unknown template type fails without sending", func(t *testing.T) {
		worker, queue, sender := newTestWorker(t)
		job := entity.NewEmailJob(entity.EmailTemplateType("monthly_statement"), "dana@example.com", "Dana", "Your statement", map[string]interface{}{})
		queue.Create(ctx, job)

		worker.ProcessNow(ctx)

		if job.Status != entity.EmailStatusFailed {
			t.Errorf("expected status %q, got %q", entity.EmailStatusFailed, job.Status)
		}
		if len(sender.SentEmails) != 0 {
			t.Errorf("expected no sent emails, got %d", len(sender.SentEmails))
		}
	})
}
