// Package error defines domain-specific errors for the Property Ledger application.
package error

import "errors"

// Recurring template domain errors.
var (
	// ErrRecurringTemplateNotFound is returned when a recurring template is not found.
	ErrRecurringTemplateNotFound = errors.New("recurring template not found")

	// ErrNotAuthorizedToModifyTemplate is returned when user is not authorized to modify a template.
	ErrNotAuthorizedToModifyTemplate = errors.New("not authorized to modify recurring template")

	// ErrInvalidDayOfMonth is returned when the day of month is outside 1-31.
	ErrInvalidDayOfMonth = errors.New("day of month must be between 1 and 31")

	// ErrInvalidEndCondition is returned when the end condition is unknown or
	// its companion field is missing.
	ErrInvalidEndCondition = errors.New("invalid end condition")

	// ErrTemplateInactive is returned when generation is requested for an inactive template.
	ErrTemplateInactive = errors.New("recurring template is inactive")

	// ErrInvalidGenerationPeriod is returned when the YYYY-MM period is malformed.
	ErrInvalidGenerationPeriod = errors.New("invalid generation period")
)

// RecurringErrorCode defines error codes for recurring template errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecurringErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDayOfMonth       RecurringErrorCode = "REC-010001"
	ErrCodeInvalidEndCondition     RecurringErrorCode = "REC-010002"
	ErrCodeRecurringDateGuard      RecurringErrorCode = "REC-010003"
	ErrCodeInvalidGenerationPeriod RecurringErrorCode = "REC-010004"

	// Lookup errors (02XXXX)
	ErrCodeRecurringTemplateNotFound RecurringErrorCode = "REC-020001"
	ErrCodeNotAuthorizedTemplate     RecurringErrorCode = "REC-020002"

	// Generation errors (03XXXX)
	ErrCodeTemplateInactive RecurringErrorCode = "REC-030001"
	ErrCodeGenerationFailed RecurringErrorCode = "REC-030002"
)

// RecurringError represents a recurring template error with code and message.
type RecurringError struct {
	Code    RecurringErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurringError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurringError) Unwrap() error {
	return e.Err
}

// NewRecurringError creates a new RecurringError with the given code and message.
func NewRecurringError(code RecurringErrorCode, message string, err error) *RecurringError {
	return &RecurringError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
