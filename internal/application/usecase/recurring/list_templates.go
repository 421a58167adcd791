package recurring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
)

// ListTemplatesInput represents the input for listing recurring templates.
type ListTemplatesInput struct {
	UserID     uuid.UUID
	ProjectID  *uuid.UUID
	ActiveOnly bool
}

// TemplateOutput represents a single recurring template in the output.
type TemplateOutput struct {
	ID                  uuid.UUID
	ProjectID           uuid.UUID
	Type                entity.TransactionType
	Amount              decimal.Decimal
	CategoryID          *uuid.UUID
	Category            *CategoryOutput
	SupplierID          *uuid.UUID
	Supplier            *SupplierOutput
	Description         string
	DayOfMonth          int
	StartDate           time.Time
	EndCondition        entity.RecurringEndCondition
	OccurrenceLimit     int
	UntilDate           *time.Time
	OccurrencesCount    int
	LastGeneratedPeriod string
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// CategoryOutput represents category information in template output.
type CategoryOutput struct {
	ID      uuid.UUID
	Name    string
	Type    entity.CategoryType
	IsOther bool
}

// SupplierOutput represents supplier information in template output.
type SupplierOutput struct {
	ID   uuid.UUID
	Name string
}

// ListTemplatesOutput represents the output of listing recurring templates.
type ListTemplatesOutput struct {
	Templates []*TemplateOutput
}

// ListTemplatesUseCase handles listing recurring templates logic.
type ListTemplatesUseCase struct {
	templateRepo adapter.RecurringTemplateRepository
}

// NewListTemplatesUseCase creates a new ListTemplatesUseCase instance.
func NewListTemplatesUseCase(templateRepo adapter.RecurringTemplateRepository) *ListTemplatesUseCase {
	return &ListTemplatesUseCase{templateRepo: templateRepo}
}

// Execute performs the recurring template listing.
func (uc *ListTemplatesUseCase) Execute(ctx context.Context, input ListTemplatesInput) (*ListTemplatesOutput, error) {
	templates, err := uc.templateRepo.FindByFilter(ctx, adapter.RecurringTemplateFilter{
		UserID:     input.UserID,
		ProjectID:  input.ProjectID,
		ActiveOnly: input.ActiveOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring templates: %w", err)
	}

	output := &ListTemplatesOutput{Templates: make([]*TemplateOutput, 0, len(templates))}
	for _, t := range templates {
		output.Templates = append(output.Templates, toTemplateOutput(t.Template, t.Category, t.Supplier))
	}

	return output, nil
}

// toTemplateOutput maps a template entity and its resolved references to the
// output representation shared by the package's use cases.
func toTemplateOutput(template *entity.RecurringTemplate, category *entity.Category, supplier *entity.Supplier) *TemplateOutput {
	output := &TemplateOutput{
		ID:                  template.ID,
		ProjectID:           template.ProjectID,
		Type:                template.Type,
		Amount:              template.Amount,
		CategoryID:          template.CategoryID,
		SupplierID:          template.SupplierID,
		Description:         template.Description,
		DayOfMonth:          template.DayOfMonth,
		StartDate:           template.StartDate,
		EndCondition:        template.EndCondition,
		OccurrenceLimit:     template.OccurrenceLimit,
		UntilDate:           template.UntilDate,
		OccurrencesCount:    template.OccurrencesCount,
		LastGeneratedPeriod: template.LastGeneratedPeriod,
		IsActive:            template.IsActive,
		CreatedAt:           template.CreatedAt,
		UpdatedAt:           template.UpdatedAt,
	}
	if category != nil {
		output.Category = &CategoryOutput{
			ID:      category.ID,
			Name:    category.Name,
			Type:    category.Type,
			IsOther: category.IsOther,
		}
	}
	if supplier != nil {
		output.Supplier = &SupplierOutput{
			ID:   supplier.ID,
			Name: supplier.Name,
		}
	}
	return output
}
