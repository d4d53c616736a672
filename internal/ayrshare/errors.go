package ayrshare

import (
	"errors"
	"fmt"
)

// Typed errors for upstream API operations.
// These allow services to use errors.Is() for reliable error detection
// instead of fragile string matching.
var (
	// ErrBadRequest indicates the request was malformed or invalid (HTTP 400).
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthorized indicates the API key was rejected (HTTP 401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the request was rejected due to insufficient permissions (HTTP 403).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the requested resource does not exist upstream (HTTP 404).
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates the provider throttled the request (HTTP 429).
	ErrRateLimited = errors.New("rate limited")
)

// APIError carries the upstream status and message for any non-success
// response. Callers can distinguish transient from permanent failures
// by status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ayrshare error (%d): %s", e.StatusCode, e.Message)
}

// wrapStatusError turns a non-2xx response into an APIError, chained to
// a sentinel where one exists so errors.Is() works at the boundary.
func wrapStatusError(operation string, status int, message string) error {
	apiErr := &APIError{StatusCode: status, Message: message}

	var sentinel error
	switch status {
	case 400:
		sentinel = ErrBadRequest
	case 401:
		sentinel = ErrUnauthorized
	case 403:
		sentinel = ErrForbidden
	case 404:
		sentinel = ErrNotFound
	case 429:
		sentinel = ErrRateLimited
	}

	if sentinel != nil {
		return fmt.Errorf("%s: %w: %w", operation, sentinel, apiErr)
	}
	return fmt.Errorf("%s: %w", operation, apiErr)
}

// IsAuthError returns true if the error is an authentication/authorization error.
// This is a convenience function for checking whether rotating the API key might help.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}
