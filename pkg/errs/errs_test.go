package errs

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidation(CodeQueryTooShort, "query must be at least 3 characters")

	assert.Equal(t, CodeQueryTooShort, err.Code)
	assert.Contains(t, err.Error(), CodeQueryTooShort)
	assert.Contains(t, err.Error(), "query must be at least 3 characters")
}

func TestServiceError_DefaultRetryAfter(t *testing.T) {
	err := NewService(CodeSearchError, "search is temporarily unavailable")

	assert.Equal(t, 60*time.Second, err.RetryAfter)
	assert.Equal(t, CodeSearchError, err.Code)
}

func TestServiceError_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewServiceWrap(CodeFetchFailed, "fetch failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAsValidation(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewValidation(CodeInvalidLimit, "limit must be between 1 and 20"))

	v, ok := AsValidation(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidLimit, v.Code)

	_, ok = AsValidation(errors.New("plain"))
	assert.False(t, ok)
}

func TestAsService(t *testing.T) {
	wrapped := fmt.Errorf("orchestrator: %w", NewService(CodeSearchError, "unavailable"))

	s, ok := AsService(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeSearchError, s.Code)

	_, ok = AsService(NewValidation(CodeInvalidQuery, "bad"))
	assert.False(t, ok)
}
