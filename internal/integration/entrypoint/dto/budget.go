package dto

import (
	"time"

	"github.com/property-ledger/backend/internal/application/usecase/budget"
)

// CreateBudgetRequest represents the request body for budget creation.
type CreateBudgetRequest struct {
	ProjectID  string  `json:"project_id" binding:"required"`
	CategoryID string  `json:"category_id" binding:"required"`
	PeriodType string  `json:"period_type" binding:"required,oneof=monthly annual"`
	Amount     float64 `json:"amount" binding:"required"`
	StartDate  string  `json:"start_date" binding:"required"`
	EndDate    *string `json:"end_date,omitempty"`
}

// UpdateBudgetRequest represents the request body for budget update.
type UpdateBudgetRequest struct {
	CategoryID *string  `json:"category_id,omitempty"`
	PeriodType *string  `json:"period_type,omitempty" binding:"omitempty,oneof=monthly annual"`
	Amount     *float64 `json:"amount,omitempty"`
	StartDate  *string  `json:"start_date,omitempty"`
	EndDate    *string  `json:"end_date,omitempty"`
}

// BudgetResponse represents a budget in API responses.
type BudgetResponse struct {
	ID         string                       `json:"id"`
	ProjectID  string                       `json:"project_id"`
	CategoryID string                       `json:"category_id"`
	Category   *TransactionCategoryResponse `json:"category,omitempty"`
	PeriodType string                       `json:"period_type"`
	Amount     string                       `json:"amount"`
	StartDate  string                       `json:"start_date"`
	EndDate    string                       `json:"end_date"`
	CreatedAt  time.Time                    `json:"created_at"`
	UpdatedAt  time.Time                    `json:"updated_at"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// ToBudgetResponse converts a BudgetOutput to a BudgetResponse DTO.
func ToBudgetResponse(b *budget.BudgetOutput) BudgetResponse {
	response := BudgetResponse{
		ID:         b.ID.String(),
		ProjectID:  b.ProjectID.String(),
		CategoryID: b.CategoryID.String(),
		PeriodType: string(b.PeriodType),
		Amount:     b.Amount.String(),
		StartDate:  b.StartDate.Format("2006-01-02"),
		EndDate:    b.EndDate.Format("2006-01-02"),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}

	if b.Category != nil {
		response.Category = &TransactionCategoryResponse{
			ID:      b.Category.ID.String(),
			Name:    b.Category.Name,
			Type:    string(b.Category.Type),
			IsOther: b.Category.IsOther,
		}
	}

	return response
}

// ToBudgetListResponse converts budget outputs to a BudgetListResponse.
func ToBudgetListResponse(budgets []*budget.BudgetOutput) BudgetListResponse {
	items := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		items[i] = ToBudgetResponse(b)
	}
	return BudgetListResponse{Budgets: items}
}
