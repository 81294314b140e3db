package trove

import "errors"

var (
	// ErrInvalidCommand is returned when a command fails structural validation.
	// The trove is never modified when this error is returned.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrNotFound is returned by lookups and removals that match no command.
	ErrNotFound = errors.New("not found")

	// ErrParse is returned when a persisted trove document cannot be decoded.
	ErrParse = errors.New("invalid trove document")
)
