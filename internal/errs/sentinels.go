// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist or is not owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates failed authentication.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates a request that failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOutOfStock indicates a decrement attempted on a medication with no stock left.
	ErrOutOfStock = errors.New("out of stock")
)

type validationError struct{ msg string }

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrInvalidInput }

// Invalid returns a validation error carrying a client-facing message.
// It matches ErrInvalidInput with errors.Is.
func Invalid(msg string) error { return &validationError{msg: msg} }
