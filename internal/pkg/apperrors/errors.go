package apperrors

import "errors"

// Error categories. Every error returned by the service layer wraps one of these.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")
	ErrResourceNotFound = errors.New("resource not found")
	ErrTransientStorage = errors.New("transient storage failure")
	ErrBadRequest       = errors.New("bad request")
)

// Authentication and authorization errors
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
)

// Entity lookups. They unwrap to ErrResourceNotFound.
var (
	ErrUserNotFound       = NewResourceNotFoundError("user not found")
	ErrStudentNotFound    = NewResourceNotFoundError("student not found")
	ErrCourseNotFound     = NewResourceNotFoundError("course not found")
	ErrEnrollmentNotFound = NewResourceNotFoundError("enrollment not found")
)

// CustomError carries a category (Err) plus a caller-facing message and,
// optionally, the offending field and details echoed back to the client.
type CustomError struct {
	Err     error
	Message string
	Field   string
	Details map[string]interface{}
}

func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails attaches details that the HTTP layer returns with 4xx responses.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewValidationError reports malformed or missing input for field.
func NewValidationError(field, message string) error {
	return &CustomError{Err: ErrValidationFailed, Field: field, Message: message}
}

// NewConflictError reports a uniqueness violation on field.
func NewConflictError(field, message string) *CustomError {
	return &CustomError{Err: ErrConflict, Field: field, Message: message}
}

func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// FieldOf returns the field a validation or conflict error refers to, if any.
func FieldOf(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Field
	}
	return ""
}

// Is returns whether err matches target or any of errList.
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
