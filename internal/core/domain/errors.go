package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedRow indicates a stored row is missing a required field or
	// holds a value that cannot be decoded into its entity. Callers decide
	// whether to skip the row or abort the batch.
	ErrMalformedRow = errors.New("malformed row")
)
