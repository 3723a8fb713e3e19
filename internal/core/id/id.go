// Package id defines the key type of every stored record.
package id

import "github.com/google/uuid"

// ID is a UUIDv7, so keys generated later sort later.
type ID = uuid.UUID

// New returns a fresh UUIDv7. A failing v7 source falls back to v4.
func New() ID {
	if v, err := uuid.NewV7(); err == nil {
		return v
	}
	return uuid.New()
}

// Parse accepts any canonical UUID text form.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// IsNil reports whether v is the zero UUID, i.e. a reference never set.
func IsNil(v ID) bool {
	return v == uuid.Nil
}
