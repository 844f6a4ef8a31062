package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound: a referenced entity id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrConflict: a uniqueness invariant rejected the write.
	ErrConflict = errors.New("conflict")
	// ErrInvalid: malformed input, surfaced before any store write.
	ErrInvalid = errors.New("invalid input")
)

func notFound(what string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(what, args...), ErrNotFound)
}

func conflict(what string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(what, args...), ErrConflict)
}

func invalid(what string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(what, args...), ErrInvalid)
}

// wrapLookup maps a store miss to ErrNotFound and passes other store
// failures through untouched.
func wrapLookup(err error, what string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(what, args...)
	}
	return err
}
