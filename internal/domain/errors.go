package domain

import "errors"

// Sentinel errors mapped onto HTTP status codes at the transport layer.
// Wrap with fmt.Errorf to add context; handlers match with errors.Is.
// Anything else bubbling out of a repository is a backend failure and
// becomes a 500.
var (
	// ErrInvalidInput marks client mistakes: a missing query, an
	// unknown search mode, out-of-range parameters.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks lookups of products that do not exist.
	ErrNotFound = errors.New("not found")
)
