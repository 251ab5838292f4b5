package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the query ran but nothing matched. It is an expected outcome.
	ErrNotFound = errors.New("poem not found")
	// ErrNotLoaded is wrapped in a StorageError when a backend is used before Init or Load.
	ErrNotLoaded = errors.New("storage not loaded")
	// ErrIncompletePoem is returned for poems with an empty name, author or text.
	ErrIncompletePoem = errors.New("poem name, writer and text are required")
)

// StorageError reports that the backend itself could not be read or written.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// IsStorageError reports whether err came from an unreachable or broken backend.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
