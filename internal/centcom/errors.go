package centcom

import (
	"errors"
	"fmt"
)

// Sentinel errors for CentCom ban searches.
var (
	// ErrNetworkUnavailable is returned when the service cannot be reached,
	// answers with a non-success status, or returns an empty body.
	ErrNetworkUnavailable = errors.New("centcom API unavailable")

	// ErrInvalidResponse is returned when the body is not valid JSON.
	ErrInvalidResponse = errors.New("invalid centcom response")

	// ErrInvalidCkey is returned for an empty ckey.
	ErrInvalidCkey = errors.New("invalid ckey")
)

// APIError represents a non-success response from CentCom.
type APIError struct {
	StatusCode int
	Message    string
}

// Error returns the error message.
func (e *APIError) Error() string {
	return fmt.Sprintf("centcom API error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap reports status failures as ErrNetworkUnavailable.
func (e *APIError) Unwrap() error {
	return ErrNetworkUnavailable
}

// NewAPIError creates a new APIError.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
	}
}
