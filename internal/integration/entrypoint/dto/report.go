package dto

// ProjectReportRequest represents the request body for a project report.
// Window fields follow the financial summary modes; include_transactions
// defaults to true when omitted.
type ProjectReportRequest struct {
	ProjectID           string  `json:"project_id" binding:"required"`
	Format              string  `json:"format" binding:"required,oneof=excel pdf zip"`
	Mode                string  `json:"mode,omitempty" binding:"omitempty,oneof=current_month selected_month date_range all_time project"`
	Month               string  `json:"month,omitempty"`
	StartDate           *string `json:"start_date,omitempty"`
	EndDate             *string `json:"end_date,omitempty"`
	IncludeTransactions *bool   `json:"include_transactions,omitempty"`
	IncludeBudgets      bool    `json:"include_budgets,omitempty"`
	IncludeFund         bool    `json:"include_fund,omitempty"`
	IncludeDocuments    bool    `json:"include_documents,omitempty"`
}

// SupplierReportRequest represents the request body for a supplier report.
// The supplier is addressed in the path.
type SupplierReportRequest struct {
	Format           string  `json:"format" binding:"required,oneof=excel pdf zip"`
	Mode             string  `json:"mode,omitempty" binding:"omitempty,oneof=current_month selected_month date_range all_time"`
	Month            string  `json:"month,omitempty"`
	StartDate        *string `json:"start_date,omitempty"`
	EndDate          *string `json:"end_date,omitempty"`
	IncludeDocuments bool    `json:"include_documents,omitempty"`
}
