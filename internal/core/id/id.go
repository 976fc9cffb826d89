// Package id provides UUID generation for all catalog entities.
// UUIDv7 is time-ordered, so id order matches creation order.
package id

import (
	"github.com/google/uuid"
)

// ID is the canonical identifier type for all entities.
type ID = uuid.UUID

// New generates a new UUIDv7.
func New() ID {
	v7, err := uuid.NewV7()
	if err != nil {
		// NewV7 fails only if the random source is broken;
		// fall back to v4 rather than panicking mid-request.
		return uuid.New()
	}
	return v7
}

// Parse parses an ID from its string form.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse parses an ID and panics on failure. For tests and constants.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// Nil is the zero ID.
var Nil = uuid.Nil

// IsNil reports whether id is the zero ID.
func IsNil(id ID) bool {
	return id == uuid.Nil
}
