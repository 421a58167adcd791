// Package error defines domain-specific errors for the Property Ledger application.
package error

import "errors"

// Fund domain errors.
var (
	// ErrFundNotFound is returned when a project has no fund.
	ErrFundNotFound = errors.New("fund not found")

	// ErrFundDisabled is returned when a fund operation targets a project
	// whose fund is disabled.
	ErrFundDisabled = errors.New("fund is not enabled for this project")

	// ErrInvalidFundMovement is returned when a fund movement is malformed.
	ErrInvalidFundMovement = errors.New("invalid fund movement")
)

// FundErrorCode defines error codes for fund errors.
// Format: FND-XXYYYY where XX is category and YYYY is specific error.
type FundErrorCode string

const (
	// Lookup errors (01XXXX)
	ErrCodeFundNotFound FundErrorCode = "FND-010001"
	ErrCodeFundDisabled FundErrorCode = "FND-010002"

	// Movement errors (02XXXX)
	ErrCodeInvalidFundMovement FundErrorCode = "FND-020001"
	ErrCodeFundAccrualFailed   FundErrorCode = "FND-020002"
)

// FundError represents a fund error with code and message.
type FundError struct {
	Code    FundErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *FundError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *FundError) Unwrap() error {
	return e.Err
}

// NewFundError creates a new FundError with the given code and message.
func NewFundError(code FundErrorCode, message string, err error) *FundError {
	return &FundError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
