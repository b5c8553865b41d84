package errors

import (
	"net/http"

	"ordering/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Cart-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Incorrect email or password",
		"",
	)

	ErrSessionExpired = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_EXPIRED",
		"Your session has expired, please sign in again",
		"",
	)

	ErrSessionInvalid = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_INVALID",
		"The session is not valid",
		"",
	)

	ErrAccountExists = NewBaseError(
		http.StatusConflict,
		"ACCOUNT_ALREADY_EXISTS",
		"An account with this email already exists",
		"",
	)

	ErrPasswordStrength = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_STRENGTH",
		"Password is not strong enough",
		"",
	)

	ErrPasswordForbiddenWords = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_FORBIDDEN_WORDS",
		"Password contains forbidden words or patterns",
		"",
	)

	ErrProfileNotFound = NewBaseError(
		http.StatusNotFound,
		"PROFILE_NOT_FOUND",
		"No profile exists for this account",
		"",
	)

	ErrAuthServiceUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"AUTH_SERVICE_UNAVAILABLE",
		"The sign-in service could not be reached",
		"",
	)

	ErrAuthFailed = NewBaseError(
		http.StatusUnauthorized,
		"AUTH_FAILED",
		"Authentication failed",
		"",
	)

	// Auth state machine errors
	ErrTransitionInFlight = NewBaseError(
		http.StatusConflict,
		"TRANSITION_IN_FLIGHT",
		"Another sign-in operation is already in progress",
		"",
	)

	ErrInvalidTransition = NewBaseError(
		http.StatusConflict,
		"INVALID_TRANSITION",
		"The operation is not allowed in the current sign-in state",
		"",
	)

	ErrTransitionAbandoned = NewBaseError(
		http.StatusConflict,
		"TRANSITION_ABANDONED",
		"The operation was cancelled before it completed",
		"",
	)

	// Persistence-related errors
	ErrPersistenceFailed = NewBaseError(
		http.StatusInternalServerError,
		"PERSISTENCE_FAILED",
		"Failed to access the saved session",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal error",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)

// ValidationError reports malformed input to a cart operation. State is left unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}

	return "validation failed: " + e.Field + " " + e.Reason
}

// Unwrap lets errors.Is match ErrValidationFailed.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

func (e *ValidationError) HTTPCode() int     { return ErrValidationFailed.HTTPCode() }
func (e *ValidationError) ErrorCode() string { return ErrValidationFailed.ErrorCode() }
func (e *ValidationError) Message() string   { return ErrValidationFailed.Message() }
func (e *ValidationError) Details() string   { return e.Field + " " + e.Reason }

// AuthError reports that the auth backend rejected a credential or token operation.
// It matches its kind (e.g. ErrInvalidCredentials) and its cause under errors.Is.
type AuthError struct {
	kind  *BaseError
	cause error
}

// NewAuthError classifies cause under kind. A nil kind falls back to ErrAuthFailed.
func NewAuthError(kind *BaseError, cause error) *AuthError {
	if kind == nil {
		kind = ErrAuthFailed
	}

	return &AuthError{kind: kind, cause: cause}
}

func (e *AuthError) Error() string {
	if e.cause == nil {
		return e.kind.message
	}

	return e.kind.message + ": " + e.cause.Error()
}

// Unwrap exposes both the kind and the cause.
func (e *AuthError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}

	return []error{e.kind, e.cause}
}

func (e *AuthError) HTTPCode() int     { return e.kind.httpCode }
func (e *AuthError) ErrorCode() string { return e.kind.errorCode }
func (e *AuthError) Message() string   { return e.kind.message }

func (e *AuthError) Details() string {
	if e.cause == nil {
		return ""
	}

	return e.cause.Error()
}

// PersistenceError reports a failed read or write of the saved session.
type PersistenceError struct {
	Op    string // "save", "load" or "clear"
	cause error
}

// NewPersistenceError wraps a storage failure for the given operation.
func NewPersistenceError(op string, cause error) *PersistenceError {
	return &PersistenceError{Op: op, cause: cause}
}

func (e *PersistenceError) Error() string {
	if e.cause == nil {
		return "session " + e.Op + " failed"
	}

	return "session " + e.Op + " failed: " + e.cause.Error()
}

// Unwrap exposes both ErrPersistenceFailed and the cause.
func (e *PersistenceError) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrPersistenceFailed}
	}

	return []error{ErrPersistenceFailed, e.cause}
}

func (e *PersistenceError) HTTPCode() int     { return ErrPersistenceFailed.HTTPCode() }
func (e *PersistenceError) ErrorCode() string { return ErrPersistenceFailed.ErrorCode() }
func (e *PersistenceError) Message() string   { return ErrPersistenceFailed.Message() }
func (e *PersistenceError) Details() string   { return e.Error() }
