package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrConfiguration ErrorType = "CONFIGURATION"
	ErrNotFound      ErrorType = "NOT_FOUND"
	ErrRateLimit     ErrorType = "RATE_LIMIT"
	ErrUnauthorized  ErrorType = "UNAUTHORIZED"
	ErrRemote        ErrorType = "REMOTE"
	ErrNetwork       ErrorType = "NETWORK"
	ErrNoArticles    ErrorType = "NO_ARTICLES"
	ErrInvalidInput  ErrorType = "INVALID_INPUT"
	ErrInternal      ErrorType = "INTERNAL"
)

// Typed is implemented by errors that belong to the application taxonomy.
type Typed interface {
	error
	ErrorType() ErrorType
}

// AppError represents an application error
type AppError struct {
	Type      ErrorType
	Message   string
	Cause     error
	Timestamp time.Time
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// ErrorType implements Typed
func (e *AppError) ErrorType() ErrorType {
	return e.Type
}

// New creates a new AppError
func New(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:      errType,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// TypeOf walks the error chain and returns the first taxonomy type found.
// Errors outside the taxonomy are reported as ErrInternal.
func TypeOf(err error) ErrorType {
	if err == nil {
		return ""
	}
	var typed Typed
	if stderrors.As(err, &typed) {
		return typed.ErrorType()
	}
	return ErrInternal
}

// Message returns the human-readable part of an error, without the type prefix.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// Is reports whether err belongs to the given type
func Is(err error, errType ErrorType) bool {
	return err != nil && TypeOf(err) == errType
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, ErrNotFound)
}

// IsRateLimit checks if the error is a rate limit error
func IsRateLimit(err error) bool {
	return Is(err, ErrRateLimit)
}

// IsConfiguration checks if the error is a configuration error
func IsConfiguration(err error) bool {
	return Is(err, ErrConfiguration)
}

// IsInvalidInput checks if the error is an invalid input error
func IsInvalidInput(err error) bool {
	return Is(err, ErrInvalidInput)
}

// IsValidationError is an alias for IsInvalidInput
func IsValidationError(err error) bool {
	return IsInvalidInput(err)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(message string, err error) *AppError {
	return New(ErrConfiguration, message, err)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, err error) *AppError {
	return New(ErrNotFound, message, err)
}

// NewValidationError creates a new validation error
func NewValidationError(message string, err error) *AppError {
	return New(ErrInvalidInput, message, err)
}

// NewNoArticlesError creates the error reported when every feed came back empty
func NewNoArticlesError(feeds int) *AppError {
	return New(ErrNoArticles, fmt.Sprintf("no articles retrieved from %d feeds", feeds), nil)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return New(ErrInternal, message, err)
}
