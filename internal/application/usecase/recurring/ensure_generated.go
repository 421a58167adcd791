package recurring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
)

// EnsureGeneratedInput represents the input for the catch-up generation. A
// nil UserID processes every active template across users; the scheduler's
// daily job runs it that way.
type EnsureGeneratedInput struct {
	UserID *uuid.UUID
}

// EnsureGeneratedOutput represents the output of the catch-up generation.
type EnsureGeneratedOutput struct {
	ProcessedTemplates int
	GeneratedCount     int
	FailedCount        int
}

// EnsureGeneratedUseCase walks every month from a template's last generated
// period (or its start date) through the current month and fills in the
// missing instances. Safe to run repeatedly.
type EnsureGeneratedUseCase struct {
	templateRepo    adapter.RecurringTemplateRepository
	transactionRepo adapter.TransactionRepository
}

// NewEnsureGeneratedUseCase creates a new EnsureGeneratedUseCase instance.
func NewEnsureGeneratedUseCase(
	templateRepo adapter.RecurringTemplateRepository,
	transactionRepo adapter.TransactionRepository,
) *EnsureGeneratedUseCase {
	return &EnsureGeneratedUseCase{
		templateRepo:    templateRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the catch-up generation.
func (uc *EnsureGeneratedUseCase) Execute(ctx context.Context, input EnsureGeneratedInput) (*EnsureGeneratedOutput, error) {
	templates, err := uc.loadTemplates(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	output := &EnsureGeneratedOutput{}
	for _, template := range templates {
		output.ProcessedTemplates++
		generated, err := uc.catchUp(ctx, template, now)
		output.GeneratedCount += generated
		if err != nil {
			slog.Warn("failed to catch up recurring template",
				"template_id", template.ID, "error", err)
			output.FailedCount++
		}
	}

	return output, nil
}

func (uc *EnsureGeneratedUseCase) loadTemplates(ctx context.Context, userID *uuid.UUID) ([]*entity.RecurringTemplate, error) {
	if userID == nil {
		templates, err := uc.templateRepo.FindAllActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list active recurring templates: %w", err)
		}
		return templates, nil
	}

	withRefs, err := uc.templateRepo.FindByFilter(ctx, adapter.RecurringTemplateFilter{
		UserID:     *userID,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring templates: %w", err)
	}
	templates := make([]*entity.RecurringTemplate, 0, len(withRefs))
	for _, t := range withRefs {
		templates = append(templates, t.Template)
	}
	return templates, nil
}

// catchUp generates the template's missing instances month by month through
// the month containing now. It stops at the first failure and reports how
// many instances landed before it.
func (uc *EnsureGeneratedUseCase) catchUp(ctx context.Context, template *entity.RecurringTemplate, now time.Time) (int, error) {
	cursor := firstPendingMonth(template)
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	generated := 0
	for !cursor.After(currentMonth) {
		id, err := generateForPeriod(ctx, uc.transactionRepo, uc.templateRepo, template, cursor.Year(), cursor.Month())
		if err != nil {
			return generated, err
		}
		if id != nil {
			generated++
		}
		cursor = cursor.AddDate(0, 1, 0)
	}
	return generated, nil
}

// firstPendingMonth returns the first month that may still need an instance:
// the month after the last generated period, or the template's first month
// when nothing was generated yet.
func firstPendingMonth(template *entity.RecurringTemplate) time.Time {
	if template.LastGeneratedPeriod != "" {
		if last, err := time.Parse("2006-01", template.LastGeneratedPeriod); err == nil {
			return time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
		}
	}
	return time.Date(template.StartDate.Year(), template.StartDate.Month(), 1, 0, 0, 0, 0, time.UTC)
}
