package library

import (
	"errors"
	"fmt"
)

var (
	// ErrStorage marks read/write failures in the backing store. Callers
	// decide whether to retry or surface the failure to the user.
	ErrStorage = errors.New("storage error")

	// ErrNotFound marks lookups for keys or ids that do not exist.
	ErrNotFound = errors.New("not found")
)

func wrapStorage(operation string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, operation, err)
}
