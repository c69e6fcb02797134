package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates the mutation would violate a uniqueness or
	// reference constraint.
	ErrConflict = errors.New("conflict")
)
