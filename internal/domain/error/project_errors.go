// Package error defines domain-specific errors for the Property Ledger application.
package error

import "errors"

// Project domain errors.
var (
	// ErrProjectNotFound is returned when a project is not found in the system.
	ErrProjectNotFound = errors.New("project not found")

	// ErrNotAuthorizedToModifyProject is returned when user is not authorized to modify a project.
	ErrNotAuthorizedToModifyProject = errors.New("not authorized to modify project")

	// ErrProjectNameRequired is returned when the project name is empty.
	ErrProjectNameRequired = errors.New("project name is required")

	// ErrProjectNameTaken is returned when another project of the user already carries the name.
	ErrProjectNameTaken = errors.New("a project with this name already exists")

	// ErrInvalidContractDuration is returned when the contract duration is not positive.
	ErrInvalidContractDuration = errors.New("contract duration must be at least one month")

	// ErrParentProjectNotFound is returned when the referenced parent project does not exist.
	ErrParentProjectNotFound = errors.New("parent project not found")

	// ErrNotAParentProject is returned when a sub-project references a project
	// that is not marked as a parent.
	ErrNotAParentProject = errors.New("referenced project is not a parent project")

	// ErrSubProjectCannotBeParent is returned when a sub-project is flagged as parent.
	ErrSubProjectCannotBeParent = errors.New("a sub-project cannot be a parent project")

	// ErrContractPeriodNotFound is returned when a contract period is not found.
	ErrContractPeriodNotFound = errors.New("contract period not found")

	// ErrProjectHasNoStartDate is returned when an operation requires a contract start date.
	ErrProjectHasNoStartDate = errors.New("project has no start date")

	// ErrProjectArchived is returned when a mutating operation targets an archived project.
	ErrProjectArchived = errors.New("project is archived")
)

// ProjectErrorCode defines error codes for project errors.
// Format: PRJ-XXYYYY where XX is category and YYYY is specific error.
type ProjectErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeProjectNameRequired      ProjectErrorCode = "PRJ-010001"
	ErrCodeProjectNameTaken         ProjectErrorCode = "PRJ-010002"
	ErrCodeInvalidContractDuration  ProjectErrorCode = "PRJ-010003"
	ErrCodeProjectNotFound          ProjectErrorCode = "PRJ-010004"
	ErrCodeNotAuthorizedProject     ProjectErrorCode = "PRJ-010005"
	ErrCodeParentProjectNotFound    ProjectErrorCode = "PRJ-010006"
	ErrCodeNotAParentProject        ProjectErrorCode = "PRJ-010007"
	ErrCodeSubProjectCannotBeParent ProjectErrorCode = "PRJ-010008"
	ErrCodeProjectArchived          ProjectErrorCode = "PRJ-010009"

	// Contract period errors (02XXXX)
	ErrCodeContractPeriodNotFound ProjectErrorCode = "PRJ-020001"
	ErrCodeProjectHasNoStartDate  ProjectErrorCode = "PRJ-020002"

	// Deletion errors (03XXXX)
	ErrCodeDeletePasswordRequired ProjectErrorCode = "PRJ-030001"

	// Asset upload errors (04XXXX)
	ErrCodeProjectAssetUploadFailed ProjectErrorCode = "PRJ-040001"
)

// ProjectError represents a project error with code and message.
type ProjectError struct {
	Code    ProjectErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProjectError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ProjectError) Unwrap() error {
	return e.Err
}

// NewProjectError creates a new ProjectError with the given code and message.
func NewProjectError(code ProjectErrorCode, message string, err error) *ProjectError {
	return &ProjectError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
