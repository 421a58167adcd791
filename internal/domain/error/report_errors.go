// Package error defines domain-specific errors for the Property Ledger application.
package error

import "errors"

// Report domain errors.
var (
	// ErrInvalidReportFormat is returned when the requested format is not excel, pdf or zip.
	ErrInvalidReportFormat = errors.New("invalid report format")

	// ErrInvalidReportWindow is returned when the report window cannot be resolved.
	ErrInvalidReportWindow = errors.New("invalid report window")

	// ErrReportRenderFailed is returned when report rendering fails.
	ErrReportRenderFailed = errors.New("failed to render report")
)

// ReportErrorCode defines error codes for report errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidReportFormat ReportErrorCode = "RPT-010001"
	ErrCodeInvalidReportWindow ReportErrorCode = "RPT-010002"

	// Rendering errors (02XXXX)
	ErrCodeReportRenderFailed ReportErrorCode = "RPT-020001"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
