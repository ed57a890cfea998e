package store

import (
	"fmt"
)

// StorageError is returned when an analysis can't be copied into or out of
// the store.
type StorageError struct {
	Message       string
	OriginalError error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s (original error: %v)", e.Message, e.OriginalError)
}

func (e *StorageError) Unwrap() error {
	return e.OriginalError
}

func NewStorageError(message string, originalError error) *StorageError {
	return &StorageError{Message: message, OriginalError: originalError}
}
