package service

import (
	"fmt"

	"github.com/finbook/finbook-api/internal/store"
)

// InvalidCardNumberError reports which card number in a balance batch could
// not be resolved. It wraps store.ErrCardNotFound so callers can match with
// errors.Is while still recovering the offending number with errors.As.
type InvalidCardNumberError struct {
	Number string
}

// Error implements the error interface for InvalidCardNumberError.
func (e *InvalidCardNumberError) Error() string {
	return fmt.Sprintf("invalid card number %q", e.Number)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *InvalidCardNumberError) Unwrap() error {
	return store.ErrCardNotFound
}
