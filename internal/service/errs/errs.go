package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when caller input violates a structural constraint.
	// It is always reported before anything is written.
	ErrValidation = errors.New("validation error")

	// ErrStorage is returned when the store is unreachable or rejects a transaction.
	ErrStorage = errors.New("storage error")

	// ErrNotFound is reserved for read-by-id operations.
	ErrNotFound = errors.New("not found")
)

// Validation wraps a formatted message with ErrValidation.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Storage wraps err with ErrStorage, keeping the original error in the chain.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
