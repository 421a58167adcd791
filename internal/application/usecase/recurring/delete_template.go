package recurring

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/property-ledger/backend/internal/application/adapter"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// DeleteTemplateInput represents the input for deleting a recurring template.
type DeleteTemplateInput struct {
	TemplateID uuid.UUID
	UserID     uuid.UUID
}

// DeleteTemplateUseCase handles recurring template deletion. Generated
// instances are regular transactions and survive the template.
type DeleteTemplateUseCase struct {
	templateRepo adapter.RecurringTemplateRepository
}

// NewDeleteTemplateUseCase creates a new DeleteTemplateUseCase instance.
func NewDeleteTemplateUseCase(templateRepo adapter.RecurringTemplateRepository) *DeleteTemplateUseCase {
	return &DeleteTemplateUseCase{templateRepo: templateRepo}
}

// Execute performs the recurring template deletion.
func (uc *DeleteTemplateUseCase) Execute(ctx context.Context, input DeleteTemplateInput) error {
	// Find template and validate ownership
	template, err := uc.templateRepo.FindByID(ctx, input.TemplateID)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecurringTemplateNotFound) {
			return domainerror.NewRecurringError(
				domainerror.ErrCodeRecurringTemplateNotFound,
				"recurring template not found",
				domainerror.ErrRecurringTemplateNotFound,
			)
		}
		return fmt.Errorf("failed to find recurring template: %w", err)
	}
	if template.UserID != input.UserID {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeNotAuthorizedTemplate,
			"not authorized to modify this recurring template",
			domainerror.ErrNotAuthorizedToModifyTemplate,
		)
	}

	// Delete template from database
	if err := uc.templateRepo.Delete(ctx, template.ID); err != nil {
		return fmt.Errorf("failed to delete recurring template: %w", err)
	}

	return nil
}
