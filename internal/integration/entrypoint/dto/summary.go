package dto

import (
	"github.com/property-ledger/backend/internal/application/usecase/summary"
)

// FinancialSummaryResponse represents the financial summary of a project over
// a resolved window. Income carries the accrual floor; net is income minus
// expenses.
type FinancialSummaryResponse struct {
	Window             WindowResponse `json:"window"`
	Income             string         `json:"income"`
	Expense            string         `json:"expense"`
	Net                string         `json:"net"`
	RecordedIncome     string         `json:"recorded_income"`
	AccruedIncome      string         `json:"accrued_income"`
	ExceptionalExpense string         `json:"exceptional_expense"`
	TransactionCount   int            `json:"transaction_count"`
}

// ToFinancialSummaryResponse converts a summary output to its DTO.
func ToFinancialSummaryResponse(output *summary.GetFinancialSummaryOutput) FinancialSummaryResponse {
	return FinancialSummaryResponse{
		Window:             ToWindowResponse(output.Window),
		Income:             output.Income.String(),
		Expense:            output.Expense.String(),
		Net:                output.Income.Sub(output.Expense).String(),
		RecordedIncome:     output.RecordedIncome.String(),
		AccruedIncome:      output.AccruedIncome.String(),
		ExceptionalExpense: output.ExceptionalExpense.String(),
		TransactionCount:   output.TransactionCount,
	}
}
