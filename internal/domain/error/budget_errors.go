// Package error defines domain-specific errors for the Property Ledger application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found in the system.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrNotAuthorizedToModifyBudget is returned when user is not authorized to modify a budget.
	ErrNotAuthorizedToModifyBudget = errors.New("not authorized to modify budget")

	// ErrInvalidBudgetPeriodType is returned when the period type is neither monthly nor annual.
	ErrInvalidBudgetPeriodType = errors.New("invalid budget period type")

	// ErrInvalidBudgetAmount is returned when the budget amount is not positive.
	ErrInvalidBudgetAmount = errors.New("budget amount must be greater than zero")

	// ErrBudgetCategoryRequired is returned when no category is provided.
	ErrBudgetCategoryRequired = errors.New("budget category is required")

	// ErrBudgetAlreadyExists is returned when the project already budgets the
	// category for an overlapping window.
	ErrBudgetAlreadyExists = errors.New("a budget for this category already exists in the window")

	// ErrInvalidBudgetWindow is returned when the end date precedes the start date.
	ErrInvalidBudgetWindow = errors.New("budget end date must not precede its start date")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BDG-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBudgetPeriodType BudgetErrorCode = "BDG-010001"
	ErrCodeInvalidBudgetAmount     BudgetErrorCode = "BDG-010002"
	ErrCodeBudgetCategoryRequired  BudgetErrorCode = "BDG-010003"
	ErrCodeInvalidBudgetWindow     BudgetErrorCode = "BDG-010004"

	// Lookup errors (02XXXX)
	ErrCodeBudgetNotFound      BudgetErrorCode = "BDG-020001"
	ErrCodeNotAuthorizedBudget BudgetErrorCode = "BDG-020002"

	// Conflict errors (03XXXX)
	ErrCodeBudgetAlreadyExists BudgetErrorCode = "BDG-030001"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
