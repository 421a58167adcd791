package dto

import (
	"time"

	"github.com/property-ledger/backend/internal/application/usecase/transaction"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// CreateTransactionRequest represents the request body for transaction creation.
// Either date or the period_start/period_end pair must be set, never both.
type CreateTransactionRequest struct {
	ProjectID        string  `json:"project_id" binding:"required"`
	Type             string  `json:"type" binding:"required,oneof=expense income"`
	Amount           float64 `json:"amount" binding:"required"`
	Date             *string `json:"date,omitempty"`
	PeriodStart      *string `json:"period_start,omitempty"`
	PeriodEnd        *string `json:"period_end,omitempty"`
	CategoryID       *string `json:"category_id,omitempty"`
	SupplierID       *string `json:"supplier_id,omitempty"`
	ContractPeriodID *string `json:"contract_period_id,omitempty"`
	IsExceptional    bool    `json:"is_exceptional,omitempty"`
	FromFund         bool    `json:"from_fund,omitempty"`
	AllowDuplicate   bool    `json:"allow_duplicate,omitempty"`
	Notes            string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Type          *string  `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
	Amount        *float64 `json:"amount,omitempty"`
	Date          *string  `json:"date,omitempty"`
	PeriodStart   *string  `json:"period_start,omitempty"`
	PeriodEnd     *string  `json:"period_end,omitempty"`
	CategoryID    *string  `json:"category_id,omitempty"`
	ClearCategory bool     `json:"clear_category,omitempty"`
	SupplierID    *string  `json:"supplier_id,omitempty"`
	ClearSupplier bool     `json:"clear_supplier,omitempty"`
	IsExceptional *bool    `json:"is_exceptional,omitempty"`
	Notes         *string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// GroupFileRequest references a staged upload to attach to a group row.
type GroupFileRequest struct {
	StagingKey string `json:"staging_key" binding:"required"`
	FileName   string `json:"file_name" binding:"required"`
}

// GroupRowRequest represents one row of a group submission.
type GroupRowRequest struct {
	ProjectID     string             `json:"project_id" binding:"required"`
	SubProjectID  *string            `json:"sub_project_id,omitempty"`
	Type          string             `json:"type" binding:"required,oneof=expense income"`
	Amount        float64            `json:"amount" binding:"required"`
	Date          string             `json:"date" binding:"required"`
	CategoryID    *string            `json:"category_id,omitempty"`
	SupplierID    *string            `json:"supplier_id,omitempty"`
	IsExceptional bool               `json:"is_exceptional,omitempty"`
	FromFund      bool               `json:"from_fund,omitempty"`
	Notes         string             `json:"notes,omitempty" binding:"omitempty,max=1000"`
	Files         []GroupFileRequest `json:"files,omitempty"`
}

// CreateGroupTransactionsRequest represents the request body for a group submission.
type CreateGroupTransactionsRequest struct {
	Rows []GroupRowRequest `json:"rows" binding:"required,min=1"`
}

// AttachStagedDocumentRequest represents the request body for attaching a
// staged upload to a transaction.
type AttachStagedDocumentRequest struct {
	StagingKey string `json:"staging_key" binding:"required"`
	FileName   string `json:"file_name" binding:"required"`
}

// TransactionCategoryResponse represents category information in transaction responses.
type TransactionCategoryResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	IsOther bool   `json:"is_other"`
}

// TransactionSupplierResponse represents supplier information in transaction responses.
type TransactionSupplierResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TransactionDocumentResponse represents an attached document in transaction responses.
type TransactionDocumentResponse struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                  string                        `json:"id"`
	UserID              string                        `json:"user_id"`
	ProjectID           string                        `json:"project_id"`
	Type                string                        `json:"type"`
	Amount              string                        `json:"amount"`
	Date                *string                       `json:"date,omitempty"`
	PeriodStart         *string                       `json:"period_start,omitempty"`
	PeriodEnd           *string                       `json:"period_end,omitempty"`
	CategoryID          *string                       `json:"category_id,omitempty"`
	Category            *TransactionCategoryResponse  `json:"category,omitempty"`
	SupplierID          *string                       `json:"supplier_id,omitempty"`
	Supplier            *TransactionSupplierResponse  `json:"supplier,omitempty"`
	IsExceptional       bool                          `json:"is_exceptional"`
	FromFund            bool                          `json:"from_fund"`
	RecurringTemplateID *string                       `json:"recurring_template_id,omitempty"`
	GroupID             *string                       `json:"group_id,omitempty"`
	Notes               string                        `json:"notes"`
	Documents           []TransactionDocumentResponse `json:"documents,omitempty"`
	CreatedAt           time.Time                     `json:"created_at"`
	UpdatedAt           time.Time                     `json:"updated_at"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionTotalsResponse represents aggregated totals in API responses.
type TransactionTotalsResponse struct {
	IncomeTotal  string `json:"income_total"`
	ExpenseTotal string `json:"expense_total"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
	Totals       TransactionTotalsResponse     `json:"totals"`
}

// GroupTransactionsResponse represents the outcome of a group submission.
type GroupTransactionsResponse struct {
	GroupID       string                       `json:"group_id"`
	CreatedIDs    []string                     `json:"created_ids"`
	CreatedCount  int                          `json:"created_count"`
	FailedCount   int                          `json:"failed_count"`
	IncomeCount   int                          `json:"income_count"`
	ExpenseCount  int                          `json:"expense_count"`
	IncomeTotal   string                       `json:"income_total"`
	ExpenseTotal  string                       `json:"expense_total"`
	AttachedFiles int                          `json:"attached_files"`
	RowErrors     []domainerror.RowError       `json:"row_errors,omitempty"`
	FileErrors    []transaction.GroupFileError `json:"file_errors,omitempty"`
	Partial       bool                         `json:"partial"`
}

// GroupValidationResponse represents the response when every row of a group
// submission failed validation and nothing was created.
type GroupValidationResponse struct {
	Error     string                 `json:"error"`
	Code      string                 `json:"code"`
	RowErrors []domainerror.RowError `json:"row_errors"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	response := TransactionResponse{
		ID:            txn.ID.String(),
		UserID:        txn.UserID.String(),
		ProjectID:     txn.ProjectID.String(),
		Type:          string(txn.Type),
		Amount:        txn.Amount.String(),
		IsExceptional: txn.IsExceptional,
		FromFund:      txn.FromFund,
		Notes:         txn.Notes,
		CreatedAt:     txn.CreatedAt,
		UpdatedAt:     txn.UpdatedAt,
	}

	if txn.TxDate != nil {
		dateStr := txn.TxDate.Format("2006-01-02")
		response.Date = &dateStr
	}
	if txn.PeriodStart != nil {
		startStr := txn.PeriodStart.Format("2006-01-02")
		response.PeriodStart = &startStr
	}
	if txn.PeriodEnd != nil {
		endStr := txn.PeriodEnd.Format("2006-01-02")
		response.PeriodEnd = &endStr
	}
	if txn.CategoryID != nil {
		categoryIDStr := txn.CategoryID.String()
		response.CategoryID = &categoryIDStr
	}
	if txn.Category != nil {
		response.Category = &TransactionCategoryResponse{
			ID:      txn.Category.ID.String(),
			Name:    txn.Category.Name,
			Type:    string(txn.Category.Type),
			IsOther: txn.Category.IsOther,
		}
	}
	if txn.SupplierID != nil {
		supplierIDStr := txn.SupplierID.String()
		response.SupplierID = &supplierIDStr
	}
	if txn.Supplier != nil {
		response.Supplier = &TransactionSupplierResponse{
			ID:   txn.Supplier.ID.String(),
			Name: txn.Supplier.Name,
		}
	}
	if txn.RecurringTemplateID != nil {
		templateIDStr := txn.RecurringTemplateID.String()
		response.RecurringTemplateID = &templateIDStr
	}
	if txn.GroupID != nil {
		groupIDStr := txn.GroupID.String()
		response.GroupID = &groupIDStr
	}
	for _, doc := range txn.Documents {
		response.Documents = append(response.Documents, TransactionDocumentResponse{
			ID:          doc.ID.String(),
			FileName:    doc.FileName,
			ContentType: doc.ContentType,
			SizeBytes:   doc.SizeBytes,
			UploadedAt:  doc.UploadedAt,
		})
	}

	return response
}

// ToTransactionListResponse converts a ListTransactionsOutput to TransactionListResponse.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}

	return TransactionListResponse{
		Transactions: transactions,
		Pagination: TransactionPaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
		Totals: TransactionTotalsResponse{
			IncomeTotal:  output.Totals.IncomeTotal.String(),
			ExpenseTotal: output.Totals.ExpenseTotal.String(),
		},
	}
}

// ToGroupTransactionsResponse converts a group submission output to its DTO.
func ToGroupTransactionsResponse(output *transaction.CreateGroupTransactionsOutput) GroupTransactionsResponse {
	createdIDs := make([]string, len(output.CreatedIDs))
	for i, id := range output.CreatedIDs {
		createdIDs[i] = id.String()
	}

	return GroupTransactionsResponse{
		GroupID:       output.GroupID.String(),
		CreatedIDs:    createdIDs,
		CreatedCount:  output.CreatedCount,
		FailedCount:   output.FailedCount,
		IncomeCount:   output.IncomeCount,
		ExpenseCount:  output.ExpenseCount,
		IncomeTotal:   output.IncomeTotal.String(),
		ExpenseTotal:  output.ExpenseTotal.String(),
		AttachedFiles: output.AttachedFiles,
		RowErrors:     output.RowErrors,
		FileErrors:    output.FileErrors,
		Partial:       output.Partial,
	}
}
