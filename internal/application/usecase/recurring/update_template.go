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

// UpdateTemplateInput represents the input for updating a recurring template.
// Nil fields keep their current value.
type UpdateTemplateInput struct {
	TemplateID      uuid.UUID
	UserID          uuid.UUID
	Amount          *decimal.Decimal
	CategoryID      *uuid.UUID
	ClearCategory   bool
	SupplierID      *uuid.UUID
	ClearSupplier   bool
	Description     *string
	DayOfMonth      *int
	StartDate       *time.Time
	EndCondition    *entity.RecurringEndCondition
	OccurrenceLimit *int
	UntilDate       *time.Time
	ClearUntilDate  bool
	IsActive        *bool
}

// UpdateTemplateOutput represents the output of updating a recurring template.
type UpdateTemplateOutput struct {
	Template *TemplateOutput
}

// UpdateTemplateUseCase handles recurring template updates.
type UpdateTemplateUseCase struct {
	templateRepo adapter.RecurringTemplateRepository
	projectRepo  adapter.ProjectRepository
	categoryRepo adapter.CategoryRepository
	supplierRepo adapter.SupplierRepository
}

// NewUpdateTemplateUseCase creates a new UpdateTemplateUseCase instance.
func NewUpdateTemplateUseCase(
	templateRepo adapter.RecurringTemplateRepository,
	projectRepo adapter.ProjectRepository,
	categoryRepo adapter.CategoryRepository,
	supplierRepo adapter.SupplierRepository,
) *UpdateTemplateUseCase {
	return &UpdateTemplateUseCase{
		templateRepo: templateRepo,
		projectRepo:  projectRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
	}
}

// Execute performs the recurring template update.
func (uc *UpdateTemplateUseCase) Execute(ctx context.Context, input UpdateTemplateInput) (*UpdateTemplateOutput, error) {
	// Find template and validate ownership
	template, err := uc.templateRepo.FindByID(ctx, input.TemplateID)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecurringTemplateNotFound) {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeRecurringTemplateNotFound,
				"recurring template not found",
				domainerror.ErrRecurringTemplateNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find recurring template: %w", err)
	}
	if template.UserID != input.UserID {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeNotAuthorizedTemplate,
			"not authorized to modify this recurring template",
			domainerror.ErrNotAuthorizedToModifyTemplate,
		)
	}

	// Apply amount change
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionAmount,
				"amount must be greater than zero",
				domainerror.ErrInvalidTransactionAmount,
			)
		}
		template.Amount = *input.Amount
	}

	// Apply category change
	if input.ClearCategory {
		template.CategoryID = nil
	} else if input.CategoryID != nil {
		category, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil || category.UserID != input.UserID {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		template.CategoryID = input.CategoryID
	}

	// Apply supplier change
	if input.ClearSupplier {
		template.SupplierID = nil
	} else if input.SupplierID != nil {
		supplier, err := uc.supplierRepo.FindByID(ctx, *input.SupplierID)
		if err != nil || supplier.UserID != input.UserID {
			return nil, domainerror.NewSupplierError(
				domainerror.ErrCodeSupplierNotFound,
				"supplier not found",
				domainerror.ErrSupplierNotFound,
			)
		}
		template.SupplierID = input.SupplierID
	}

	if input.Description != nil {
		template.Description = *input.Description
	}

	// Apply generation day change
	if input.DayOfMonth != nil {
		if *input.DayOfMonth < 1 || *input.DayOfMonth > 31 {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeInvalidDayOfMonth,
				"day of month must be between 1 and 31",
				domainerror.ErrInvalidDayOfMonth,
			)
		}
		template.DayOfMonth = *input.DayOfMonth
	}

	// The start date anchors already generated instances; it can only move
	// while nothing has been generated yet
	if input.StartDate != nil {
		if template.LastGeneratedPeriod != "" {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeRecurringDateGuard,
				"start date cannot change after instances were generated",
				domainerror.ErrDateBeforeContractStart,
			)
		}
		project, err := uc.projectRepo.FindByID(ctx, template.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
		if project.StartDate != nil &&
			valueobject.NormalizeDate(*input.StartDate).Before(valueobject.NormalizeDate(*project.StartDate)) {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeRecurringDateGuard,
				fmt.Sprintf("start date must not precede the contract start (%s)", project.StartDate.Format("2006-01-02")),
				domainerror.ErrDateBeforeContractStart,
			)
		}
		start := valueobject.NormalizeDate(*input.StartDate)
		template.StartDate = start
	}

	// Apply end condition change
	if input.EndCondition != nil {
		template.EndCondition = *input.EndCondition
	}
	if input.OccurrenceLimit != nil {
		template.OccurrenceLimit = *input.OccurrenceLimit
	}
	if input.ClearUntilDate {
		template.UntilDate = nil
	} else if input.UntilDate != nil {
		until := valueobject.NormalizeDate(*input.UntilDate)
		template.UntilDate = &until
	}
	if err := validateEndCondition(template.EndCondition, template.OccurrenceLimit, template.UntilDate, template.StartDate); err != nil {
		return nil, err
	}

	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}

	template.UpdatedAt = time.Now().UTC()

	// Save changes to database
	if err := uc.templateRepo.Update(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to update recurring template: %w", err)
	}

	return &UpdateTemplateOutput{Template: toTemplateOutput(template, nil, nil)}, nil
}
