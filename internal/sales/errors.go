package sales

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("invalid sale")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAlreadySettled    = errors.New("sale has already been paid")
	ErrStoreFailure      = errors.New("store failure")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// storeErr passes sale errors through untouched and wraps anything else from
// the store as ErrStoreFailure.
func storeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrAlreadySettled),
		errors.Is(err, ErrStoreFailure):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: transaction timed out: %v", ErrStoreFailure, err)
	default:
		return fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
}
