// Package recurring contains recurring-template use cases.
package recurring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// CreateTemplateInput represents the input for recurring template creation.
type CreateTemplateInput struct {
	UserID          uuid.UUID
	ProjectID       uuid.UUID
	Type            entity.TransactionType
	Amount          decimal.Decimal
	CategoryID      *uuid.UUID
	SupplierID      *uuid.UUID
	Description     string
	DayOfMonth      int
	StartDate       time.Time
	EndCondition    entity.RecurringEndCondition
	OccurrenceLimit int
	UntilDate       *time.Time
}

// CreateTemplateOutput represents the output of recurring template creation.
type CreateTemplateOutput struct {
	Template *TemplateOutput
}

// CreateTemplateUseCase handles recurring template creation logic.
type CreateTemplateUseCase struct {
	templateRepo adapter.RecurringTemplateRepository
	projectRepo  adapter.ProjectRepository
	categoryRepo adapter.CategoryRepository
	supplierRepo adapter.SupplierRepository
}

// NewCreateTemplateUseCase creates a new CreateTemplateUseCase instance.
func NewCreateTemplateUseCase(
	templateRepo adapter.RecurringTemplateRepository,
	projectRepo adapter.ProjectRepository,
	categoryRepo adapter.CategoryRepository,
	supplierRepo adapter.SupplierRepository,
) *CreateTemplateUseCase {
	return &CreateTemplateUseCase{
		templateRepo: templateRepo,
		projectRepo:  projectRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
	}
}

// Execute performs the recurring template creation.
func (uc *CreateTemplateUseCase) Execute(ctx context.Context, input CreateTemplateInput) (*CreateTemplateOutput, error) {
	// Validate transaction type
	if input.Type != entity.TransactionTypeExpense && input.Type != entity.TransactionTypeIncome {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	// Validate amount
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	// Validate the generation day
	if input.DayOfMonth < 1 || input.DayOfMonth > 31 {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidDayOfMonth,
			"day of month must be between 1 and 31",
			domainerror.ErrInvalidDayOfMonth,
		)
	}

	// Validate the end condition and its companion field
	if err := validateEndCondition(input.EndCondition, input.OccurrenceLimit, input.UntilDate, input.StartDate); err != nil {
		return nil, err
	}

	// Find project and validate ownership
	project, err := uc.findOwnedProject(ctx, input.ProjectID, input.UserID)
	if err != nil {
		return nil, err
	}

	// The template must not generate before the contract start
	if project.StartDate != nil &&
		valueobject.NormalizeDate(input.StartDate).Before(valueobject.NormalizeDate(*project.StartDate)) {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeRecurringDateGuard,
			fmt.Sprintf("start date must not precede the contract start (%s)", project.StartDate.Format("2006-01-02")),
			domainerror.ErrDateBeforeContractStart,
		)
	}

	// Validate category if provided
	if input.CategoryID != nil {
		category, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil || category.UserID != input.UserID {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
	}

	// Validate supplier if provided
	if input.SupplierID != nil {
		supplier, err := uc.supplierRepo.FindByID(ctx, *input.SupplierID)
		if err != nil || supplier.UserID != input.UserID {
			return nil, domainerror.NewSupplierError(
				domainerror.ErrCodeSupplierNotFound,
				"supplier not found",
				domainerror.ErrSupplierNotFound,
			)
		}
	}

	// Create template entity
	template := entity.NewRecurringTemplate(
		input.UserID,
		project.ID,
		input.Type,
		input.Amount,
		input.CategoryID,
		input.SupplierID,
		input.Description,
		input.DayOfMonth,
		valueobject.NormalizeDate(input.StartDate),
		input.EndCondition,
	)
	template.OccurrenceLimit = input.OccurrenceLimit
	if input.UntilDate != nil {
		until := valueobject.NormalizeDate(*input.UntilDate)
		template.UntilDate = &until
	}

	// Save template to database
	if err := uc.templateRepo.Create(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to create recurring template: %w", err)
	}

	return &CreateTemplateOutput{Template: toTemplateOutput(template, nil, nil)}, nil
}

func (uc *CreateTemplateUseCase) findOwnedProject(ctx context.Context, projectID, userID uuid.UUID) (*entity.Project, error) {
	project, err := uc.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, domainerror.ErrProjectNotFound) {
			return nil, domainerror.NewProjectError(
				domainerror.ErrCodeProjectNotFound,
				"project not found",
				domainerror.ErrProjectNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if project.UserID != userID {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeProjectNotFound,
			"project not found",
			domainerror.ErrProjectNotFound,
		)
	}
	return project, nil
}

// validateEndCondition checks the end condition against its companion field.
func validateEndCondition(condition entity.RecurringEndCondition, occurrenceLimit int, untilDate *time.Time, startDate time.Time) error {
	switch condition {
	case entity.RecurringEndNever:
		return nil
	case entity.RecurringEndOccurrences:
		if occurrenceLimit < 1 {
			return domainerror.NewRecurringError(
				domainerror.ErrCodeInvalidEndCondition,
				"occurrence limit must be at least 1",
				domainerror.ErrInvalidEndCondition,
			)
		}
		return nil
	case entity.RecurringEndUntilDate:
		if untilDate == nil {
			return domainerror.NewRecurringError(
				domainerror.ErrCodeInvalidEndCondition,
				"an until date is required",
				domainerror.ErrInvalidEndCondition,
			)
		}
		if valueobject.NormalizeDate(*untilDate).Before(valueobject.NormalizeDate(startDate)) {
			return domainerror.NewRecurringError(
				domainerror.ErrCodeInvalidEndCondition,
				"the until date must not precede the start date",
				domainerror.ErrInvalidEndCondition,
			)
		}
		return nil
	default:
		return domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidEndCondition,
			"end condition must be 'never', 'occurrences' or 'until_date'",
			domainerror.ErrInvalidEndCondition,
		)
	}
}
