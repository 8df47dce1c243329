package repository

import (
	"database/sql"
	"errors"
	"fmt"
)

// MapError translates database errors to domain errors.
// sql.ErrNoRows becomes notFoundErr. Any other failure is wrapped with storageErr
// so callers can classify it with errors.Is while the driver error stays reachable.
func MapError(err error, notFoundErr, storageErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	if errors.Is(err, storageErr) {
		return err
	}

	return fmt.Errorf("%w: %w", storageErr, err)
}
