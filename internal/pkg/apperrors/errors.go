package apperrors

import "errors"

// Common errors
var (
	// Connection errors. Surfaced to the caller as-is, never retried here.
	ErrConnectionFailed = errors.New("database connection failed")

	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrAlreadyExists    = errors.New("resource already exists")

	// Write integrity errors
	ErrForeignKeyViolation = errors.New("referenced row does not exist")
	ErrTransactionFailed   = errors.New("transaction failed")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrPermissionDenied   = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// User errors
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

// Cycle errors
var (
	ErrCycleNotFound      = errors.New("cycle not found")
	ErrCycleAlreadyExists = errors.New("cycle with this name already exists")
	ErrNoActiveCycle      = errors.New("no active cycle")
)

// Course errors
var (
	ErrCourseNotFound = errors.New("course not found")
)

// Student errors
var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrStudentAlreadyExists = errors.New("student with this name already exists in the course")
)

// Attendance errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidStatus      = errors.New("invalid attendance status")
)

// Requirement errors
var (
	ErrRequirementNotFound = errors.New("requirement not found")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
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

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrResourceNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrCycleNotFound) ||
		errors.Is(err, ErrNoActiveCycle) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrAttendanceNotFound) ||
		errors.Is(err, ErrRequirementNotFound)
}

// IsConflict reports whether err is a uniqueness or foreign key violation.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrUsernameAlreadyExists) ||
		errors.Is(err, ErrCycleAlreadyExists) ||
		errors.Is(err, ErrStudentAlreadyExists) ||
		errors.Is(err, ErrForeignKeyViolation)
}
