package byond

import (
	"errors"
	"fmt"
)

// Error types for BYOND conversions and members directory lookups.
var (
	// ErrNetworkUnavailable is returned when the members directory cannot be
	// reached, answers with a non-success status, or returns an empty body.
	ErrNetworkUnavailable = errors.New("byond members directory unavailable")

	// ErrNotFound is returned when a field is absent from a profile page.
	ErrNotFound = errors.New("field not found")

	// ErrMalformedDocument is returned when a field's opening token is present
	// but no closing quote follows it.
	ErrMalformedDocument = errors.New("malformed profile document")

	// ErrInvalidProfile is returned when a fetched page is not a profile page.
	ErrInvalidProfile = errors.New("invalid profile page")

	// ErrInvalidCkey is returned for an empty ckey.
	ErrInvalidCkey = errors.New("invalid ckey")

	// ErrParse is returned when timestamp text is not recognizable.
	ErrParse = errors.New("unrecognized timestamp")
)

// APIError represents a non-success response from the members directory.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("byond members API error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap lets callers treat any status failure as ErrNetworkUnavailable.
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
