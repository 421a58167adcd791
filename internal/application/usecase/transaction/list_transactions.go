// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// ListTransactionsInput represents the input for listing the transactions of
// a project. Transactions of sub-projects are included for parent projects.
type ListTransactionsInput struct {
	UserID        uuid.UUID
	ProjectID     uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	Type          *entity.TransactionType
	CategoryID    *uuid.UUID
	SupplierID    *uuid.UUID
	IsExceptional *bool
	FromFund      *bool
	Search        string
	Page          int
	Limit         int
}

// TransactionOutput represents a single transaction in the output.
type TransactionOutput struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	ProjectID           uuid.UUID
	Type                entity.TransactionType
	Amount              decimal.Decimal
	TxDate              *time.Time
	PeriodStart         *time.Time
	PeriodEnd           *time.Time
	CategoryID          *uuid.UUID
	Category            *CategoryOutput
	SupplierID          *uuid.UUID
	Supplier            *SupplierOutput
	IsExceptional       bool
	FromFund            bool
	RecurringTemplateID *uuid.UUID
	GroupID             *uuid.UUID
	Notes               string
	Documents           []*DocumentOutput
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// CategoryOutput represents category information in transaction output.
type CategoryOutput struct {
	ID      uuid.UUID
	Name    string
	Type    entity.CategoryType
	IsOther bool
}

// SupplierOutput represents supplier information in transaction output.
type SupplierOutput struct {
	ID   uuid.UUID
	Name string
}

// DocumentOutput represents an attached document in transaction output.
type DocumentOutput struct {
	ID          uuid.UUID
	FileName    string
	ContentType string
	SizeBytes   int64
	UploadedAt  time.Time
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// TotalsOutput represents aggregated totals over the filtered set.
type TotalsOutput struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Pagination   PaginationOutput
	Totals       TotalsOutput
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	projectRepo     adapter.ProjectRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	projectRepo adapter.ProjectRepository,
) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		projectRepo:     projectRepo,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	// Set default pagination values
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	project, err := uc.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		if errors.Is(err, domainerror.ErrProjectNotFound) {
			return nil, domainerror.NewProjectError(
				domainerror.ErrCodeProjectNotFound,
				"project not found",
				domainerror.ErrProjectNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if project.UserID != input.UserID {
		return nil, domainerror.NewProjectError(
			domainerror.ErrCodeProjectNotFound,
			"project not found",
			domainerror.ErrProjectNotFound,
		)
	}

	// A parent project lists its own and its sub-projects' transactions
	projectIDs := []uuid.UUID{project.ID}
	if project.IsParent {
		subs, err := uc.projectRepo.FindSubProjects(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load sub-projects: %w", err)
		}
		for _, sub := range subs {
			projectIDs = append(projectIDs, sub.ID)
		}
	}

	filter := adapter.TransactionFilter{
		UserID:        input.UserID,
		ProjectIDs:    projectIDs,
		SupplierID:    input.SupplierID,
		CategoryID:    input.CategoryID,
		Type:          input.Type,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		IsExceptional: input.IsExceptional,
		FromFund:      input.FromFund,
		Search:        input.Search,
	}

	result, err := uc.transactionRepo.FindByFilter(ctx, filter, adapter.TransactionPagination{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	totals, err := uc.transactionRepo.GetTotals(ctx, filter)
	if err != nil {
		// Keep the listing usable without totals
		slog.Warn("failed to aggregate transaction totals", "projectID", project.ID, "error", err)
		totals = &entity.TransactionTotals{IncomeTotal: decimal.Zero, ExpenseTotal: decimal.Zero}
	}

	output := &ListTransactionsOutput{
		Transactions: make([]*TransactionOutput, len(result.Transactions)),
		Pagination: PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
		Totals: TotalsOutput{
			IncomeTotal:  totals.IncomeTotal,
			ExpenseTotal: totals.ExpenseTotal,
		},
	}
	for i, row := range result.Transactions {
		output.Transactions[i] = toTransactionOutput(row.Transaction, row.Category, row.Supplier, row.Documents)
	}
	return output, nil
}

// toTransactionOutput maps a transaction and its resolved references into the
// shared output shape.
func toTransactionOutput(tx *entity.Transaction, category *entity.Category, supplier *entity.Supplier, documents []*entity.TransactionDocument) *TransactionOutput {
	out := &TransactionOutput{
		ID:                  tx.ID,
		UserID:              tx.UserID,
		ProjectID:           tx.ProjectID,
		Type:                tx.Type,
		Amount:              tx.Amount,
		TxDate:              tx.TxDate,
		PeriodStart:         tx.PeriodStart,
		PeriodEnd:           tx.PeriodEnd,
		CategoryID:          tx.CategoryID,
		SupplierID:          tx.SupplierID,
		IsExceptional:       tx.IsExceptional,
		FromFund:            tx.FromFund,
		RecurringTemplateID: tx.RecurringTemplateID,
		GroupID:             tx.GroupID,
		Notes:               tx.Notes,
		CreatedAt:           tx.CreatedAt,
		UpdatedAt:           tx.UpdatedAt,
	}
	if category != nil {
		out.Category = &CategoryOutput{
			ID:      category.ID,
			Name:    category.Name,
			Type:    category.Type,
			IsOther: category.IsOther,
		}
	}
	if supplier != nil {
		out.Supplier = &SupplierOutput{
			ID:   supplier.ID,
			Name: supplier.Name,
		}
	}
	if len(documents) > 0 {
		out.Documents = make([]*DocumentOutput, len(documents))
		for i, doc := range documents {
			out.Documents[i] = &DocumentOutput{
				ID:          doc.ID,
				FileName:    doc.FileName,
				ContentType: doc.ContentType,
				SizeBytes:   doc.SizeBytes,
				UploadedAt:  doc.UploadedAt,
			}
		}
	}
	return out
}
