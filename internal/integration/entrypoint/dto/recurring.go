package dto

import (
	"time"

	"github.com/property-ledger/backend/internal/application/usecase/recurring"
)

// CreateRecurringTemplateRequest represents the request body for template creation.
type CreateRecurringTemplateRequest struct {
	ProjectID       string  `json:"project_id" binding:"required"`
	Type            string  `json:"type" binding:"required,oneof=expense income"`
	Amount          float64 `json:"amount" binding:"required"`
	CategoryID      *string `json:"category_id,omitempty"`
	SupplierID      *string `json:"supplier_id,omitempty"`
	Description     string  `json:"description,omitempty" binding:"omitempty,max=255"`
	DayOfMonth      int     `json:"day_of_month" binding:"required,min=1,max=31"`
	StartDate       string  `json:"start_date" binding:"required"`
	EndCondition    string  `json:"end_condition,omitempty" binding:"omitempty,oneof=never occurrences until_date"`
	OccurrenceLimit int     `json:"occurrence_limit,omitempty"`
	UntilDate       *string `json:"until_date,omitempty"`
}

// UpdateRecurringTemplateRequest represents the request body for template update.
type UpdateRecurringTemplateRequest struct {
	Amount          *float64 `json:"amount,omitempty"`
	CategoryID      *string  `json:"category_id,omitempty"`
	ClearCategory   bool     `json:"clear_category,omitempty"`
	SupplierID      *string  `json:"supplier_id,omitempty"`
	ClearSupplier   bool     `json:"clear_supplier,omitempty"`
	Description     *string  `json:"description,omitempty" binding:"omitempty,max=255"`
	DayOfMonth      *int     `json:"day_of_month,omitempty" binding:"omitempty,min=1,max=31"`
	StartDate       *string  `json:"start_date,omitempty"`
	EndCondition    *string  `json:"end_condition,omitempty" binding:"omitempty,oneof=never occurrences until_date"`
	OccurrenceLimit *int     `json:"occurrence_limit,omitempty"`
	UntilDate       *string  `json:"until_date,omitempty"`
	ClearUntilDate  bool     `json:"clear_until_date,omitempty"`
	IsActive        *bool    `json:"is_active,omitempty"`
}

// GenerateMonthlyRequest represents the request body for monthly generation.
type GenerateMonthlyRequest struct {
	Period string `json:"period" binding:"required"`
}

// RecurringTemplateResponse represents a recurring template in API responses.
type RecurringTemplateResponse struct {
	ID                  string                       `json:"id"`
	ProjectID           string                       `json:"project_id"`
	Type                string                       `json:"type"`
	Amount              string                       `json:"amount"`
	CategoryID          *string                      `json:"category_id,omitempty"`
	Category            *TransactionCategoryResponse `json:"category,omitempty"`
	SupplierID          *string                      `json:"supplier_id,omitempty"`
	Supplier            *TransactionSupplierResponse `json:"supplier,omitempty"`
	Description         string                       `json:"description"`
	DayOfMonth          int                          `json:"day_of_month"`
	StartDate           string                       `json:"start_date"`
	EndCondition        string                       `json:"end_condition"`
	OccurrenceLimit     int                          `json:"occurrence_limit,omitempty"`
	UntilDate           *string                      `json:"until_date,omitempty"`
	OccurrencesCount    int                          `json:"occurrences_count"`
	LastGeneratedPeriod string                       `json:"last_generated_period,omitempty"`
	IsActive            bool                         `json:"is_active"`
	CreatedAt           time.Time                    `json:"created_at"`
	UpdatedAt           time.Time                    `json:"updated_at"`
}

// RecurringTemplateListResponse represents the response for listing templates.
type RecurringTemplateListResponse struct {
	Templates []RecurringTemplateResponse `json:"templates"`
}

// GenerateMonthlyResponse represents the outcome of monthly generation.
type GenerateMonthlyResponse struct {
	Period         string   `json:"period"`
	GeneratedCount int      `json:"generated_count"`
	SkippedCount   int      `json:"skipped_count"`
	FailedCount    int      `json:"failed_count"`
	GeneratedIDs   []string `json:"generated_ids"`
}

// EnsureGeneratedResponse represents the outcome of catch-up generation.
type EnsureGeneratedResponse struct {
	ProcessedTemplates int `json:"processed_templates"`
	GeneratedCount     int `json:"generated_count"`
	FailedCount        int `json:"failed_count"`
}

// ToRecurringTemplateResponse converts a TemplateOutput to its DTO.
func ToRecurringTemplateResponse(tpl *recurring.TemplateOutput) RecurringTemplateResponse {
	response := RecurringTemplateResponse{
		ID:                  tpl.ID.String(),
		ProjectID:           tpl.ProjectID.String(),
		Type:                string(tpl.Type),
		Amount:              tpl.Amount.String(),
		Description:         tpl.Description,
		DayOfMonth:          tpl.DayOfMonth,
		StartDate:           tpl.StartDate.Format("2006-01-02"),
		EndCondition:        string(tpl.EndCondition),
		OccurrenceLimit:     tpl.OccurrenceLimit,
		OccurrencesCount:    tpl.OccurrencesCount,
		LastGeneratedPeriod: tpl.LastGeneratedPeriod,
		IsActive:            tpl.IsActive,
		CreatedAt:           tpl.CreatedAt,
		UpdatedAt:           tpl.UpdatedAt,
	}

	if tpl.CategoryID != nil {
		categoryIDStr := tpl.CategoryID.String()
		response.CategoryID = &categoryIDStr
	}
	if tpl.Category != nil {
		response.Category = &TransactionCategoryResponse{
			ID:      tpl.Category.ID.String(),
			Name:    tpl.Category.Name,
			Type:    string(tpl.Category.Type),
			IsOther: tpl.Category.IsOther,
		}
	}
	if tpl.SupplierID != nil {
		supplierIDStr := tpl.SupplierID.String()
		response.SupplierID = &supplierIDStr
	}
	if tpl.Supplier != nil {
		response.Supplier = &TransactionSupplierResponse{
			ID:   tpl.Supplier.ID.String(),
			Name: tpl.Supplier.Name,
		}
	}
	if tpl.UntilDate != nil {
		untilStr := tpl.UntilDate.Format("2006-01-02")
		response.UntilDate = &untilStr
	}

	return response
}

// ToRecurringTemplateListResponse converts template outputs to the list DTO.
func ToRecurringTemplateListResponse(templates []*recurring.TemplateOutput) RecurringTemplateListResponse {
	items := make([]RecurringTemplateResponse, len(templates))
	for i, tpl := range templates {
		items[i] = ToRecurringTemplateResponse(tpl)
	}
	return RecurringTemplateListResponse{Templates: items}
}

// ToGenerateMonthlyResponse converts the generation output to its DTO.
func ToGenerateMonthlyResponse(output *recurring.GenerateMonthlyOutput) GenerateMonthlyResponse {
	ids := make([]string, len(output.GeneratedIDs))
	for i, id := range output.GeneratedIDs {
		ids[i] = id.String()
	}
	return GenerateMonthlyResponse{
		Period:         output.Period,
		GeneratedCount: output.GeneratedCount,
		SkippedCount:   output.SkippedCount,
		FailedCount:    output.FailedCount,
		GeneratedIDs:   ids,
	}
}
