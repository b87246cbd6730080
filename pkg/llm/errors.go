package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType classifies a transport failure.
type ErrorType string

const (
	ErrorTypeEndpoint   ErrorType = "endpoint"
	ErrorTypeAuth       ErrorType = "auth"
	ErrorTypeModel      ErrorType = "model"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// Error represents a structured transport error with classification.
type Error struct {
	Type       ErrorType // Classification of the error
	Message    string    // Human-readable message
	Retryable  bool      // Whether the operation can be retried
	Cause      error     // Underlying error
	StatusCode int       // HTTP status code if applicable
}

// Error implements the error interface.
func (e *Error) Error() string {
	var parts []string
	parts = append(parts, string(e.Type))
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("HTTP %d", e.StatusCode))
	}
	parts = append(parts, e.Message)

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", strings.Join(parts, " "), e.Cause)
	}
	return strings.Join(parts, " ")
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new structured transport error.
func NewError(errType ErrorType, message string, retryable bool, cause error) *Error {
	return &Error{
		Type:      errType,
		Message:   message,
		Retryable: retryable,
		Cause:     cause,
	}
}

// ClassifyError categorizes an error and returns a structured Error.
// This consolidates classification so services can log a stable error type
// regardless of which provider produced the failure.
func ClassifyError(err error) *Error {
	if err == nil {
		return nil
	}

	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr
	}

	errStr := err.Error()
	lower := strings.ToLower(errStr)

	statusCode := 0
	for _, code := range []int{400, 401, 403, 404, 429, 500, 502, 503, 504} {
		if strings.Contains(errStr, fmt.Sprintf("%d", code)) {
			statusCode = code
			break
		}
	}

	// Authentication errors (not retryable)
	if strings.Contains(errStr, "401") || strings.Contains(lower, "unauthorized") ||
		strings.Contains(lower, "invalid api key") {
		e := NewError(ErrorTypeAuth, "authentication failed", false, err)
		e.StatusCode = statusCode
		return e
	}

	// Model not found (not retryable without config change)
	if strings.Contains(lower, "model") && (strings.Contains(lower, "not found") ||
		strings.Contains(lower, "does not exist")) {
		e := NewError(ErrorTypeModel, "model not found", false, err)
		e.StatusCode = statusCode
		return e
	}

	// Endpoint not found (not retryable without config change)
	if strings.Contains(errStr, "404") {
		e := NewError(ErrorTypeEndpoint, "endpoint not found", false, err)
		e.StatusCode = statusCode
		return e
	}

	// Connection errors (may be retryable)
	if strings.Contains(lower, "connection refused") || strings.Contains(lower, "no such host") {
		e := NewError(ErrorTypeEndpoint, "connection failed", true, err)
		e.StatusCode = statusCode
		return e
	}

	// Timeout and cancellation (retryable)
	if strings.Contains(lower, "timeout") ||
		strings.Contains(lower, "deadline exceeded") ||
		strings.Contains(lower, "context canceled") {
		e := NewError(ErrorTypeEndpoint, "request timeout", true, err)
		e.StatusCode = statusCode
		return e
	}

	// Rate limiting (retryable after backoff)
	if strings.Contains(errStr, "429") || strings.Contains(lower, "rate limit") {
		e := NewError(ErrorTypeUnknown, "rate limited", true, err)
		e.StatusCode = statusCode
		return e
	}

	// 5xx server errors (retryable)
	if strings.Contains(errStr, "500") || strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503") || strings.Contains(errStr, "504") {
		e := NewError(ErrorTypeEndpoint, "server error", true, err)
		e.StatusCode = statusCode
		return e
	}

	e := NewError(ErrorTypeUnknown, "llm error", false, err)
	e.StatusCode = statusCode
	return e
}

// GetErrorType extracts the ErrorType from an error.
func GetErrorType(err error) ErrorType {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Type
	}
	return ErrorTypeUnknown
}
