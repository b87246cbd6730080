package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantType      ErrorType
		wantRetryable bool
	}{
		{"nil error", nil, "", false},
		{"unauthorized", errors.New("status 401 Unauthorized"), ErrorTypeAuth, false},
		{"model missing", errors.New("model gemma3:4b not found"), ErrorTypeModel, false},
		{"endpoint 404", errors.New("unexpected status 404"), ErrorTypeEndpoint, false},
		{"connection refused", errors.New("dial tcp: connection refused"), ErrorTypeEndpoint, true},
		{"timeout", errors.New("context deadline exceeded"), ErrorTypeEndpoint, true},
		{"rate limited", errors.New("429 too many requests"), ErrorTypeUnknown, true},
		{"server error", errors.New("upstream returned 503"), ErrorTypeEndpoint, true},
		{"unknown", errors.New("something odd"), ErrorTypeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyError(tt.err)
			if tt.err == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantRetryable, got.Retryable)
		})
	}
}

func TestClassifyError_PassesThroughStructured(t *testing.T) {
	orig := NewError(ErrorTypeValidation, "missing field", false, nil)
	wrapped := fmt.Errorf("compute plan: %w", orig)

	got := ClassifyError(wrapped)
	assert.Same(t, orig, got)
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	e := NewError(ErrorTypeEndpoint, "connection failed", true, cause)

	assert.ErrorIs(t, e, cause)
	assert.Contains(t, e.Error(), "endpoint")
	assert.Contains(t, e.Error(), "boom")
}

func TestGetErrorType(t *testing.T) {
	e := NewError(ErrorTypeModel, "model not found", false, nil)
	assert.Equal(t, ErrorTypeModel, GetErrorType(fmt.Errorf("wrap: %w", e)))
	assert.Equal(t, ErrorTypeUnknown, GetErrorType(errors.New("plain")))
}
