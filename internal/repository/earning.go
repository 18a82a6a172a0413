package repository

import (
	"context"

	"hail/internal/domain"
)

// EarningRepository defines the persistence operations for driver earnings.
type EarningRepository interface {
	// Create persists a new earning record. Returns ErrDuplicate when an
	// earning already exists for the same ride.
	Create(ctx context.Context, earning *domain.DriverEarning) error

	// GetByDriver retrieves all earnings for a driver, newest first.
	GetByDriver(ctx context.Context, driverID string) ([]*domain.DriverEarning, error)
}
