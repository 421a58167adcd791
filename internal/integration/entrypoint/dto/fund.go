package dto

import (
	"time"

	"github.com/property-ledger/backend/internal/application/usecase/fund"
)

// FundResponse represents a project's cash fund in API responses.
type FundResponse struct {
	ID                string    `json:"id"`
	ProjectID         string    `json:"project_id"`
	Balance           string    `json:"balance"`
	MonthlyAmount     string    `json:"monthly_amount"`
	IsNegative        bool      `json:"is_negative"`
	LastAccruedPeriod string    `json:"last_accrued_period,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// FundMovementResponse represents a single fund movement in API responses.
type FundMovementResponse struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	Amount        string    `json:"amount"`
	OccurredOn    string    `json:"occurred_on"`
	TransactionID *string   `json:"transaction_id,omitempty"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// FundMovementPaginationResponse represents movement pagination information.
type FundMovementPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// FundDetailResponse represents the response for retrieving a fund with its
// movement history.
type FundDetailResponse struct {
	Fund       FundResponse                   `json:"fund"`
	Movements  []FundMovementResponse         `json:"movements"`
	Pagination FundMovementPaginationResponse `json:"pagination"`
}

// EnsureAccruedResponse represents the outcome of the accrual catch-up.
type EnsureAccruedResponse struct {
	ProcessedFunds int `json:"processed_funds"`
	AccruedCount   int `json:"accrued_count"`
	FailedCount    int `json:"failed_count"`
}

// ToFundResponse converts a FundOutput to a FundResponse DTO.
func ToFundResponse(f *fund.FundOutput) FundResponse {
	return FundResponse{
		ID:                f.ID.String(),
		ProjectID:         f.ProjectID.String(),
		Balance:           f.Balance.String(),
		MonthlyAmount:     f.MonthlyAmount.String(),
		IsNegative:        f.IsNegative,
		LastAccruedPeriod: f.LastAccruedPeriod,
		CreatedAt:         f.CreatedAt,
		UpdatedAt:         f.UpdatedAt,
	}
}

// ToFundMovementResponse converts a MovementOutput to its DTO.
func ToFundMovementResponse(m *fund.MovementOutput) FundMovementResponse {
	response := FundMovementResponse{
		ID:         m.ID.String(),
		Kind:       string(m.Kind),
		Amount:     m.Amount.String(),
		OccurredOn: m.OccurredOn.Format("2006-01-02"),
		Note:       m.Note,
		CreatedAt:  m.CreatedAt,
	}

	if m.TransactionID != nil {
		txnIDStr := m.TransactionID.String()
		response.TransactionID = &txnIDStr
	}

	return response
}

// ToFundDetailResponse converts a GetFundOutput to a FundDetailResponse.
func ToFundDetailResponse(output *fund.GetFundOutput) FundDetailResponse {
	movements := make([]FundMovementResponse, len(output.Movements))
	for i, m := range output.Movements {
		movements[i] = ToFundMovementResponse(m)
	}

	return FundDetailResponse{
		Fund:      ToFundResponse(output.Fund),
		Movements: movements,
		Pagination: FundMovementPaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
	}
}
