package prompts

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors for prompt operations.
var (
	ErrNotFound = errors.New("prompt not found")
	ErrStorage  = errors.New("prompt storage failure")
	ErrInvalid  = errors.New("invalid prompt")
)

func invalid(field string) error {
	return fmt.Errorf("%w: %s is required", ErrInvalid, field)
}

// MapHTTPStatus maps prompt domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
