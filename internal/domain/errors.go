package domain

import (
	"errors"
	"fmt"
)

// ErrRowNotFound is returned by the row locator when no row in the store
// carries the requested session id. It is a normal outcome, not a fault.
var ErrRowNotFound = errors.New("quote row not found")

// ValidationError rejects a malformed request before any side effect.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// StoreError wraps a row-store read/write failure. It is fatal for the
// current request and must reach the caller as a server fault.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("row store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
