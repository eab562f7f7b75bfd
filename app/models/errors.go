package models

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned by id-scoped lookups that miss.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is reserved for uniqueness violations. Result upserts
	// currently absorb duplicate keys, so it only surfaces if two
	// writers race the identity-key index.
	ErrConflict = errors.New("record already exists")
)

// ValidationError reports required fields missing from a write. It is
// detected before any storage call, so a failed validation never has
// side effects.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// IsValidation reports whether err is a field-validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
