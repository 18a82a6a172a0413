package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrStatusConflict is returned when a compare-and-set status update
	// finds the ride in a different status than expected.
	ErrStatusConflict = errors.New("ride status changed concurrently")

	// ErrDuplicate is returned when a create violates a uniqueness rule,
	// e.g. a second earning record for the same ride.
	ErrDuplicate = errors.New("entity already exists")
)
