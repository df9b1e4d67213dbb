package transaction

import "errors"

var (
	// ErrValidation is returned when required input is missing.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned by lookups that miss a user or a transaction.
	ErrNotFound = errors.New("not found")

	// ErrPersistence wraps failures of the underlying Persister.
	ErrPersistence = errors.New("persistence failed")
)
