package repository

import (
	"context"
	"time"

	"hail/internal/domain"
)

// StatusUpdate describes an atomic compare-and-set transition on a ride.
// The update applies only if the ride's current status equals From; the
// optional fields are written together with the new status.
type StatusUpdate struct {
	From        domain.RideStatus
	To          domain.RideStatus
	DriverID    string    // set when transitioning into accepted
	CancelledAt time.Time // set when transitioning into cancelled
}

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	// Create persists a new ride.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// GetAll retrieves recent rides.
	GetAll(ctx context.Context) ([]*domain.Ride, error)

	// UpdateStatus atomically applies upd iff the ride is still in
	// upd.From, returning the updated ride. Two concurrent accept
	// attempts on the same pending ride are serialized here: exactly one
	// sees success, the other gets ErrStatusConflict. Returns ErrNotFound
	// when the ride does not exist.
	UpdateStatus(ctx context.Context, rideID string, upd StatusUpdate) (*domain.Ride, error)
}
