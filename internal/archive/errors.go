package archive

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/organizer/internal/organizer"
	"github.com/JaimeStill/organizer/pkg/storage"
)

// ErrInvalidSnapshot indicates a snapshot that cannot be decoded or holds invalid prompts.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// MapHTTPStatus maps archive, storage, and prompt errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidSnapshot) {
		return http.StatusUnprocessableEntity
	}
	if status := storage.MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	return organizer.MapHTTPStatus(err)
}
