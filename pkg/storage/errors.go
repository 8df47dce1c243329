package storage

import (
	"errors"
	"net/http"
)

// Storage errors.
var (
	ErrNotFound       = errors.New("blob not found")
	ErrEmptyKey       = errors.New("storage key must not be empty")
	ErrInvalidKey     = errors.New("storage key contains invalid path segment")
	ErrUnknownBackend = errors.New("unsupported storage backend")
)

// MapHTTPStatus maps storage errors to HTTP status codes.
// Key errors are the caller's fault; anything unrecognized is a server error.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyKey), errors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
