// Package store persists accounts and resumes as JSON documents keyed by email.
package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no document exists for a key.
	ErrNotFound = errors.New("document not found")
	// ErrUnavailable wraps every backend failure so callers can tell
	// infrastructure trouble apart from missing data.
	ErrUnavailable = errors.New("document store unavailable")
)

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}
