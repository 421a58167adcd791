// Package error defines domain-specific errors for the Property Ledger application.
package error

import "errors"

// Object storage domain errors.
var (
	// ErrObjectNotFound is returned when an object storage key does not resolve.
	// Freshly staged uploads may surface this transiently until the object is
	// visible; attachment logic treats it as retryable.
	ErrObjectNotFound = errors.New("storage object not found")

	// ErrUploadFailed is returned when writing an object to storage fails.
	ErrUploadFailed = errors.New("failed to upload object")

	// ErrEmptyUpload is returned when an uploaded file is empty.
	ErrEmptyUpload = errors.New("uploaded file is empty")

	// ErrUploadTooLarge is returned when an uploaded file exceeds the size limit.
	ErrUploadTooLarge = errors.New("uploaded file exceeds the size limit")

	// ErrUnsupportedUpload is returned when an uploaded file's content type is
	// not accepted for the target slot.
	ErrUnsupportedUpload = errors.New("unsupported upload content type")
)

// StorageErrorCode defines error codes for storage errors.
// Format: STG-XXYYYY where XX is category and YYYY is specific error.
type StorageErrorCode string

const (
	// Upload errors (01XXXX)
	ErrCodeUploadFailed      StorageErrorCode = "STG-010001"
	ErrCodeEmptyUpload       StorageErrorCode = "STG-010002"
	ErrCodeUploadTooLarge    StorageErrorCode = "STG-010003"
	ErrCodeUnsupportedUpload StorageErrorCode = "STG-010004"

	// Object errors (02XXXX)
	ErrCodeObjectNotFound StorageErrorCode = "STG-020001"
)

// StorageError represents a storage error with code and message.
type StorageError struct {
	Code    StorageErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError with the given code and message.
func NewStorageError(code StorageErrorCode, message string, err error) *StorageError {
	return &StorageError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
