package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrUnauthorized = errors.New("session expired or unauthorized")
var ErrNotFound = errors.New("resource not found")
var ErrNoSession = errors.New("no active session")
var ErrConflict = errors.New("resource already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// APIError is a non-2xx response from the server, carrying the HTTP status
// and the server-provided message when one was present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api request failed with status %d", e.Status)
	}
	return fmt.Sprintf("api request failed (%d): %s", e.Status, e.Message)
}

// Unwrap maps well-known statuses onto the sentinel errors so callers can
// discriminate with errors.Is.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	}
	return nil
}

// ServerMessage extracts the server-provided message from err, or returns
// fallback when err carries none.
func ServerMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
