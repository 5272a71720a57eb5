package github

import (
	"errors"
	"fmt"
	"time"

	apperrors "github.com/Kamar-Folarin/portfolio-service/internal/errors"
)

// resetTimeLayout is how rate limit reset times are shown to users
const resetTimeLayout = "15:04:05 MST"

// APIError is a non-success response not covered by a more specific type
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("GitHub API error %d: %s: %v", e.StatusCode, e.Status, e.Err)
	}
	return fmt.Sprintf("GitHub API error %d: %s", e.StatusCode, e.Status)
}

func (e *APIError) Unwrap() error { return e.Err }

func (e *APIError) ErrorType() apperrors.ErrorType { return apperrors.ErrRemote }

// NotFoundError is returned for 404 responses
type NotFoundError struct {
	Endpoint string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("GitHub resource not found: %s", e.Endpoint)
}

func (e *NotFoundError) ErrorType() apperrors.ErrorType { return apperrors.ErrNotFound }

// RateLimitError represents when we hit GitHub's rate limits.
// ResetTime is zero when the response carried no reset header.
type RateLimitError struct {
	ResetTime time.Time
	Limit     int
	Remaining int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("GitHub API rate limit exceeded. Resets at %s", e.ResetAt())
}

// ResetAt formats the reset time for display
func (e *RateLimitError) ResetAt() string {
	if e.ResetTime.IsZero() {
		return "unknown time"
	}
	return e.ResetTime.Format(resetTimeLayout)
}

func (e *RateLimitError) ErrorType() apperrors.ErrorType { return apperrors.ErrRateLimit }

// UnauthorizedError is returned for 401 responses
type UnauthorizedError struct{}

func (e *UnauthorizedError) Error() string {
	return "invalid GitHub token"
}

func (e *UnauthorizedError) ErrorType() apperrors.ErrorType { return apperrors.ErrUnauthorized }

// NetworkError is returned when no response was received at all
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error while contacting GitHub (%s): %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) ErrorType() apperrors.ErrorType { return apperrors.ErrNetwork }

// ConfigError is returned before any request when required settings are missing
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("GitHub %s is not configured", e.Field)
}

func (e *ConfigError) ErrorType() apperrors.ErrorType { return apperrors.ErrConfiguration }

// ValidationError represents invalid input to GitHub client methods
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: invalid %s: %s", e.Field, e.Value)
}

func (e *ValidationError) ErrorType() apperrors.ErrorType { return apperrors.ErrInvalidInput }

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, status, endpoint string, err error) error {
	return &APIError{
		StatusCode: statusCode,
		Status:     status,
		Endpoint:   endpoint,
		Err:        err,
	}
}

// NewRateLimitError creates a new RateLimitError
func NewRateLimitError(resetTime time.Time, limit, remaining int) error {
	return &RateLimitError{
		ResetTime: resetTime,
		Limit:     limit,
		Remaining: remaining,
	}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, value string) error {
	return &ValidationError{
		Field: field,
		Value: value,
	}
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(endpoint string, err error) error {
	return &NetworkError{
		Endpoint: endpoint,
		Err:      err,
	}
}

// IsRateLimitError checks if an error is a rate limit error
func IsRateLimitError(err error) bool {
	var target *RateLimitError
	return errors.As(err, &target)
}

// IsNotFoundError checks if an error is a 404 from GitHub
func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsNetworkError checks if an error happened before any response arrived
func IsNetworkError(err error) bool {
	var target *NetworkError
	return errors.As(err, &target)
}
