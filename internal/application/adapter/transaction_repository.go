// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID        uuid.UUID
	ProjectID     *uuid.UUID
	ProjectIDs    []uuid.UUID // Parent + sub-projects
	SupplierID    *uuid.UUID
	CategoryID    *uuid.UUID
	Type          *entity.TransactionType
	StartDate     *time.Time
	EndDate       *time.Time
	IsExceptional *bool
	FromFund      *bool
	Search        string // Case-insensitive notes match
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// DuplicateProbe identifies the fields that make two transactions duplicates
// of each other.
type DuplicateProbe struct {
	ProjectID  uuid.UUID
	Type       entity.TransactionType
	Amount     decimal.Decimal
	TxDate     *time.Time
	SupplierID *uuid.UUID
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByIDWithRefs retrieves a transaction with category, supplier and
	// documents resolved.
	FindByIDWithRefs(ctx context.Context, id uuid.UUID) (*entity.TransactionWithRefs, error)

	// FindByFilter retrieves transactions based on filter criteria with pagination.
	// A transaction matches the date bounds when its date, or any day of its
	// period, falls inside them.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*entity.TransactionListResult, error)

	// FindOverlappingWindow retrieves all live (non-deleted) transactions of
	// the given projects whose date or period overlaps start..end. Used by the
	// financial summary; no pagination.
	FindOverlappingWindow(ctx context.Context, projectIDs []uuid.UUID, start, end time.Time) ([]*entity.Transaction, error)

	// FindBySupplierWindow retrieves all live transactions of a supplier
	// whose date or period overlaps start..end, across every project of the
	// user. Used by supplier reports; no pagination.
	FindBySupplierWindow(ctx context.Context, supplierID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error)

	// GetTotals aggregates income and expense sums over the filtered set,
	// ignoring pagination.
	GetTotals(ctx context.Context, filter TransactionFilter) (*entity.TransactionTotals, error)

	// ExistsDuplicate checks whether a transaction matching the probe already exists.
	ExistsDuplicate(ctx context.Context, userID uuid.UUID, probe DuplicateProbe) (bool, error)

	// ExistsForTemplateAndPeriod checks whether a template already generated
	// an instance for the YYYY-MM period.
	ExistsForTemplateAndPeriod(ctx context.Context, templateID uuid.UUID, period string) (bool, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete soft-deletes a transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByProject hard-deletes all transactions of a project. Used by the
	// project cascade delete.
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error

	// CreateDocument attaches a document row to a transaction.
	CreateDocument(ctx context.Context, doc *entity.TransactionDocument) error

	// FindDocuments lists the documents of a transaction.
	FindDocuments(ctx context.Context, transactionID uuid.UUID) ([]*entity.TransactionDocument, error)

	// FindDocumentsByTransactionIDs lists the documents of several
	// transactions in one query. Used when bundling report attachments.
	FindDocumentsByTransactionIDs(ctx context.Context, transactionIDs []uuid.UUID) ([]*entity.TransactionDocument, error)

	// FindDocumentByID retrieves a single transaction document.
	FindDocumentByID(ctx context.Context, id uuid.UUID) (*entity.TransactionDocument, error)
}
