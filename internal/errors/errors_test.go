package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type statusError struct{ t ErrorType }

func (e statusError) Error() string        { return "status" }
func (e statusError) ErrorType() ErrorType { return e.t }

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, ""},
		{"app error", NewConfigurationError("missing username", nil), ErrConfiguration},
		{"wrapped app error", fmt.Errorf("fetch: %w", NewNotFoundError("gone", nil)), ErrNotFound},
		{"custom typed", fmt.Errorf("wrap: %w", statusError{ErrRateLimit}), ErrRateLimit},
		{"plain error", fmt.Errorf("boom"), ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeOf(tt.err))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	err := New(ErrRemote, "upstream failed", fmt.Errorf("eof"))
	assert.Equal(t, "REMOTE: upstream failed (caused by: eof)", err.Error())
	assert.ErrorContains(t, err.Unwrap(), "eof")

	assert.Equal(t, "NO_ARTICLES: no articles retrieved from 3 feeds", NewNoArticlesError(3).Error())
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "missing username", Message(fmt.Errorf("load: %w", NewConfigurationError("missing username", nil))))
	assert.Equal(t, "boom", Message(fmt.Errorf("boom")))
	assert.Equal(t, "", Message(nil))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("x", nil)))
	assert.True(t, IsConfiguration(NewConfigurationError("x", nil)))
	assert.True(t, IsValidationError(NewValidationError("x", nil)))
	assert.True(t, IsRateLimit(statusError{ErrRateLimit}))
	assert.False(t, IsNotFound(nil))
	assert.False(t, IsRateLimit(fmt.Errorf("rate limit")))
}
