package recurring

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/property-ledger/backend/internal/application/adapter"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// GetTemplateInput represents the input for retrieving a recurring template.
type GetTemplateInput struct {
	TemplateID uuid.UUID
	UserID     uuid.UUID
}

// GetTemplateOutput represents the output of retrieving a recurring template.
type GetTemplateOutput struct {
	Template *TemplateOutput
}

// GetTemplateUseCase handles retrieving a single recurring template.
type GetTemplateUseCase struct {
	templateRepo adapter.RecurringTemplateRepository
}

// NewGetTemplateUseCase creates a new GetTemplateUseCase instance.
func NewGetTemplateUseCase(templateRepo adapter.RecurringTemplateRepository) *GetTemplateUseCase {
	return &GetTemplateUseCase{templateRepo: templateRepo}
}

// Execute retrieves a recurring template owned by the user.
func (uc *GetTemplateUseCase) Execute(ctx context.Context, input GetTemplateInput) (*GetTemplateOutput, error) {
	withRefs, err := uc.templateRepo.FindByIDWithRefs(ctx, input.TemplateID)
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
	if withRefs.Template.UserID != input.UserID {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeRecurringTemplateNotFound,
			"recurring template not found",
			domainerror.ErrRecurringTemplateNotFound,
		)
	}

	return &GetTemplateOutput{
		Template: toTemplateOutput(withRefs.Template, withRefs.Category, withRefs.Supplier),
	}, nil
}
