package recurring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// GenerateMonthlyInput represents the input for monthly instance generation.
// An empty Period means the current calendar month.
type GenerateMonthlyInput struct {
	UserID uuid.UUID
	Period string // YYYY-MM
}

// GenerateMonthlyOutput represents the output of monthly instance generation.
type GenerateMonthlyOutput struct {
	Period         string
	GeneratedCount int
	SkippedCount   int
	FailedCount    int
	GeneratedIDs   []uuid.UUID
}

// GenerateMonthlyUseCase generates the month's transaction instances for the
// user's active recurring templates. Generation is idempotent per
// (template, period): an instance that already exists is skipped, and the
// unique constraint backstops concurrent generations.
type GenerateMonthlyUseCase struct {
	templateRepo    adapter.RecurringTemplateRepository
	transactionRepo adapter.TransactionRepository
}

// NewGenerateMonthlyUseCase creates a new GenerateMonthlyUseCase instance.
func NewGenerateMonthlyUseCase(
	templateRepo adapter.RecurringTemplateRepository,
	transactionRepo adapter.TransactionRepository,
) *GenerateMonthlyUseCase {
	return &GenerateMonthlyUseCase{
		templateRepo:    templateRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the monthly generation.
func (uc *GenerateMonthlyUseCase) Execute(ctx context.Context, input GenerateMonthlyInput) (*GenerateMonthlyOutput, error) {
	year, month, err := parsePeriod(input.Period, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	templates, err := uc.templateRepo.FindByFilter(ctx, adapter.RecurringTemplateFilter{
		UserID:     input.UserID,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring templates: %w", err)
	}

	output := &GenerateMonthlyOutput{Period: entity.PeriodKey(year, month)}
	for _, t := range templates {
		id, err := generateForPeriod(ctx, uc.transactionRepo, uc.templateRepo, t.Template, year, month)
		if err != nil {
			// One broken template must not block the rest of the batch
			slog.Warn("failed to generate recurring instance",
				"template_id", t.Template.ID, "period", output.Period, "error", err)
			output.FailedCount++
			continue
		}
		if id == nil {
			output.SkippedCount++
			continue
		}
		output.GeneratedCount++
		output.GeneratedIDs = append(output.GeneratedIDs, *id)
	}

	return output, nil
}

// parsePeriod parses a YYYY-MM period, defaulting to the month containing now.
func parsePeriod(period string, now time.Time) (int, time.Month, error) {
	if period == "" {
		return now.Year(), now.Month(), nil
	}
	parsed, err := time.Parse("2006-01", period)
	if err != nil {
		return 0, 0, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidGenerationPeriod,
			"period must use the YYYY-MM format",
			domainerror.ErrInvalidGenerationPeriod,
		)
	}
	return parsed.Year(), parsed.Month(), nil
}

// generateForPeriod creates the template's instance for the given month
// unless one already exists or the template is not due. It returns the new
// transaction id, or nil when the month was skipped.
func generateForPeriod(
	ctx context.Context,
	transactionRepo adapter.TransactionRepository,
	templateRepo adapter.RecurringTemplateRepository,
	template *entity.RecurringTemplate,
	year int,
	month time.Month,
) (*uuid.UUID, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	if !template.ShouldGenerateFor(monthStart) {
		return nil, nil
	}

	// Clamp the configured day into the month, then respect the template span:
	// a template starting mid-month skips an instance day before its start
	txDate := instanceDate(year, month, template.DayOfMonth)
	if txDate.Before(valueobject.NormalizeDate(template.StartDate)) {
		return nil, nil
	}
	if template.UntilDate != nil && txDate.After(valueobject.NormalizeDate(*template.UntilDate)) {
		return nil, nil
	}

	period := entity.PeriodKey(year, month)
	exists, err := transactionRepo.ExistsForTemplateAndPeriod(ctx, template.ID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to check generated instances: %w", err)
	}
	if exists {
		return nil, nil
	}

	tx := entity.NewTransaction(
		template.UserID,
		template.ProjectID,
		template.Type,
		template.Amount,
		txDate,
		template.CategoryID,
		template.SupplierID,
		template.Description,
	)
	tx.RecurringTemplateID = &template.ID
	tx.GeneratedPeriod = &period

	if err := transactionRepo.Create(ctx, tx); err != nil {
		// A concurrent generation beat us to the unique constraint
		if errors.Is(err, domainerror.ErrDuplicateTransaction) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to create recurring instance: %w", err)
	}

	template.OccurrencesCount++
	if period > template.LastGeneratedPeriod {
		template.LastGeneratedPeriod = period
	}
	template.UpdatedAt = time.Now().UTC()
	if err := templateRepo.Update(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to update recurring template: %w", err)
	}

	return &tx.ID, nil
}

// instanceDate places the configured day inside the month, clamping day 29-31
// to the month's last day when needed.
func instanceDate(year int, month time.Month, day int) time.Time {
	if last := valueobject.DaysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
