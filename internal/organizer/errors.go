package organizer

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JaimeStill/organizer/internal/prompts"
)

// Engine errors.
var (
	ErrInvalidQuery = errors.New("invalid query")
	ErrInvalidID    = errors.New("invalid prompt id")
)

func invalidQuery(field, value string) error {
	return fmt.Errorf("%w: unknown %s %q", ErrInvalidQuery, field, value)
}

// MapHTTPStatus maps engine and prompt errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidQuery) || errors.Is(err, ErrInvalidID) {
		return http.StatusBadRequest
	}
	return prompts.MapHTTPStatus(err)
}
