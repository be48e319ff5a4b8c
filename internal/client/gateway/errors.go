package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned when the server answered with a non-2xx status.
type APIError struct {
	// Status is the HTTP status code of the response.
	Status int
	// Message is the server-provided error message, if any.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error: %d", e.Status)
}

// NetworkError is returned when no response was received at all.
type NetworkError struct {
	// Err is the underlying transport error.
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap exposes the underlying transport error.
func (e *NetworkError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is an APIError with status 401.
// Callers use it to trigger the shared session-expiry recovery.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsValidation reports whether err is an APIError carrying a rejected
// payload (400 or 422). The message is surfaced verbatim to the user.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		(apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnprocessableEntity)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsNetwork reports whether err means no response was received.
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
