// Package email provides email sending functionality.
package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/integration/email/templates"
)

// WorkerConfig holds the polling knobs for the email worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{PollInterval: 5 * time.Second, BatchSize: 10}
}

// Worker drains the email queue: it claims pending jobs in batches, renders
// their templates and delivers them through the configured sender. Transient
// delivery failures reschedule the job; template and permanent sender errors
// fail it for good.
type Worker struct {
	queue    adapter.EmailQueueRepository
	sender   adapter.EmailSender
	renderer *templates.Renderer
	cfg      WorkerConfig
}

// NewWorker creates a new email worker.
func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, cfg WorkerConfig) *Worker {
	return &Worker{queue: queue, sender: sender, renderer: renderer, cfg: cfg}
}

// Start runs the polling loop until the context is cancelled. A batch is
// processed immediately on startup so queued mail is not delayed by a full
// poll interval after a restart.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("email worker started",
		"poll_interval", w.cfg.PollInterval,
		"batch_size", w.cfg.BatchSize,
	)

	w.ProcessNow(ctx)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("email worker stopped")
			return
		case <-ticker.C:
			w.ProcessNow(ctx)
		}
	}
}

// ProcessNow claims and delivers one batch of pending jobs. Exported so tests
// (and the startup path) can drive the worker without the ticker.
func (w *Worker) ProcessNow(ctx context.Context) {
	jobs, err := w.queue.GetPendingJobs(ctx, w.cfg.BatchSize)
	if err != nil {
		slog.Error("email worker: claiming pending jobs failed", "error", err)
		return
	}
	for _, job := range jobs {
		if ctx.Err() != nil {
			return
		}
		w.deliver(ctx, job)
	}
}

func (w *Worker) deliver(ctx context.Context, job *entity.EmailJob) {
	logger := slog.With("job_id", job.ID, "template", job.TemplateType, "recipient", job.RecipientEmail)

	job.MarkProcessing()
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("email worker: marking job processing failed", "error", err)
		return
	}

	html, text, err := w.render(job)
	if err != nil {
		logger.Error("email worker: template rendering failed", "error", err)
		// A template that does not render today will not render tomorrow.
		w.fail(ctx, job, err, true)
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		logger.Error("email worker: delivery failed", "error", err)
		var emailErr *domainerror.EmailError
		permanent := errors.As(err, &emailErr) && emailErr.Code == domainerror.ErrCodePermanentEmailFailure
		w.fail(ctx, job, err, permanent)
		return
	}

	job.MarkSent(result.ResendID)
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("email worker: marking job sent failed", "error", err)
		return
	}
	logger.Info("email delivered", "resend_id", result.ResendID)
}

func (w *Worker) render(job *entity.EmailJob) (html, text string, err error) {
	switch job.TemplateType {
	case entity.TemplatePasswordReset:
		return w.renderer.Render(string(job.TemplateType), templates.PasswordResetData{
			UserName:  templateString(job.TemplateData, "user_name"),
			ResetURL:  templateString(job.TemplateData, "reset_url"),
			ExpiresIn: templateString(job.TemplateData, "expires_in"),
		})
	default:
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			"unknown template type",
			domainerror.ErrInvalidTemplate,
		)
	}
}

func (w *Worker) fail(ctx context.Context, job *entity.EmailJob, cause error, permanent bool) {
	job.MarkFailed(cause, permanent)
	if err := w.queue.Update(ctx, job); err != nil {
		slog.Error("email worker: recording job failure failed", "job_id", job.ID, "error", err)
		return
	}
	if job.Status == entity.EmailStatusFailed {
		slog.Warn("email job abandoned", "job_id", job.ID, "attempts", job.Attempts, "last_error", job.LastError)
	} else {
		slog.Info("email job rescheduled", "job_id", job.ID, "attempts", job.Attempts, "scheduled_at", job.ScheduledAt)
	}
}

func templateString(data map[string]interface{}, key string) string {
	s, _ := data[key].(string)
	return s
}
