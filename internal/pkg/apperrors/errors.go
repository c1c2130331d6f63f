package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")
	ErrGuestAccess      = errors.New("guest access is not allowed")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Storage errors
	ErrStorage = errors.New("storage operation failed")
)

// Domain sentinels wrap the taxonomy roots above so errors.Is against the
// root resolves the HTTP status while the sentinel stays matchable itself.

// User errors
var (
	ErrUserNotFound = NewResourceNotFoundError("user not found")
)

// Curriculum errors
var (
	ErrProgramNotFound     = NewResourceNotFoundError("program not found")
	ErrSubjectNotFound     = NewResourceNotFoundError("subject not found")
	ErrInstitutionNotFound = NewResourceNotFoundError("institution not found")
	ErrCourseNotFound      = NewResourceNotFoundError("course not found")
	ErrCohortNotFound      = NewResourceNotFoundError("cohort not found")
	ErrAlreadyAttached     = NewConflictError("already attached")
	ErrNotAttached         = NewResourceNotFoundError("not attached")
	ErrOrderScopeMismatch  = NewValidationError("relations belong to different parents")
)

// Student record errors
var (
	ErrExternalCreditExists   = NewConflictError("external credit for this subject already exists")
	ErrExternalCreditNotFound = NewResourceNotFoundError("external credit not found")
	ErrStudentInfoNotFound    = NewResourceNotFoundError("student info not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
