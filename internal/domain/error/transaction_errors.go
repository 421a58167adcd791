// Package error defines domain-specific errors for the Property Ledger application.
package error

import (
	"errors"
	"fmt"
	"strings"
)

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotAuthorizedToModifyTransaction is returned when user is not authorized to modify a transaction.
	ErrNotAuthorizedToModifyTransaction = errors.New("not authorized to modify transaction")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionAmount is returned when the transaction amount is not positive.
	ErrInvalidTransactionAmount = errors.New("transaction amount must be greater than zero")

	// ErrTransactionDateRequired is returned when neither a date nor a period is provided.
	ErrTransactionDateRequired = errors.New("transaction date or period is required")

	// ErrDateAndPeriodExclusive is returned when both a date and a period are provided.
	ErrDateAndPeriodExclusive = errors.New("transaction cannot have both a date and a period")

	// ErrInvalidTransactionPeriod is returned when the period end precedes the period start.
	ErrInvalidTransactionPeriod = errors.New("period end must not precede period start")

	// ErrDateBeforeContractStart is returned when the transaction date precedes
	// the project's (or the selected contract period's) start date.
	ErrDateBeforeContractStart = errors.New("date precedes the contract start")

	// ErrSupplierRequired is returned when an expense outside the fallback
	// category is missing a supplier.
	ErrSupplierRequired = errors.New("supplier is required for this expense")

	// ErrDuplicateTransaction is returned when an identical transaction already exists.
	ErrDuplicateTransaction = errors.New("a matching transaction already exists")

	// ErrCategoryNotFoundForTransaction is returned when the specified category is not found.
	ErrCategoryNotFoundForTransaction = errors.New("category not found")

	// ErrSupplierNotFoundForTransaction is returned when the specified supplier is not found.
	ErrSupplierNotFoundForTransaction = errors.New("supplier not found")

	// ErrTransactionDocumentNotFound is returned when a transaction document is not found.
	ErrTransactionDocumentNotFound = errors.New("transaction document not found")

	// ErrNotesTooLong is returned when the transaction notes exceed the maximum length.
	ErrNotesTooLong = errors.New("notes too long")

	// ErrGroupRowsRequired is returned when a group submission contains no rows.
	ErrGroupRowsRequired = errors.New("at least one transaction row is required")

	// ErrSubProjectRequired is returned when a group row targets a parent
	// project without naming one of its sub-projects.
	ErrSubProjectRequired = errors.New("a sub-project must be selected for a parent project")

	// ErrAllGroupRowsFailed is returned when every row of a group submission failed to persist.
	ErrAllGroupRowsFailed = errors.New("all transaction rows failed")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010002"
	ErrCodeTransactionDateRequired  TransactionErrorCode = "TXN-010003"
	ErrCodeDateAndPeriodExclusive   TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidTransactionPeriod TransactionErrorCode = "TXN-010005"
	ErrCodeDateBeforeContractStart  TransactionErrorCode = "TXN-010006"
	ErrCodeSupplierRequired         TransactionErrorCode = "TXN-010007"
	ErrCodeTxnCategoryNotFound      TransactionErrorCode = "TXN-010008"
	ErrCodeTxnSupplierNotFound      TransactionErrorCode = "TXN-010009"
	ErrCodeNotesTooLong             TransactionErrorCode = "TXN-010010"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010011"

	// Lookup errors (02XXXX)
	ErrCodeTransactionNotFound         TransactionErrorCode = "TXN-020001"
	ErrCodeNotAuthorizedTransaction    TransactionErrorCode = "TXN-020002"
	ErrCodeTransactionDocumentNotFound TransactionErrorCode = "TXN-020003"

	// Conflict errors (03XXXX)
	ErrCodeDuplicateTransaction TransactionErrorCode = "TXN-030001"

	// Group submission errors (04XXXX)
	ErrCodeGroupRowsRequired  TransactionErrorCode = "TXN-040001"
	ErrCodeGroupRowsInvalid   TransactionErrorCode = "TXN-040002"
	ErrCodeAllGroupRowsFailed TransactionErrorCode = "TXN-040003"
	ErrCodeSubProjectRequired TransactionErrorCode = "TXN-040004"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// RowError ties a validation or persistence failure to its 1-based row in a
// group submission.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// GroupValidationError aggregates per-row failures of a group submission.
// When it is returned nothing was created.
type GroupValidationError struct {
	Rows []RowError
}

// Error implements the error interface.
func (e *GroupValidationError) Error() string {
	parts := make([]string, 0, len(e.Rows))
	for _, r := range e.Rows {
		parts = append(parts, fmt.Sprintf("row %d: %s", r.Row, r.Message))
	}
	return "group validation failed: " + strings.Join(parts, "; ")
}
