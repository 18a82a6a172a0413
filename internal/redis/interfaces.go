package redis

import (
	"context"
	"time"
)

// LockStoreInterface defines the interface for ride-accept locking.
type LockStoreInterface interface {
	AcquireRideLock(ctx context.Context, rideID string, ttl time.Duration) (bool, error)
	ReleaseRideLock(ctx context.Context, rideID string) error
}

// PositionStoreInterface defines the interface for ride position caching.
type PositionStoreInterface interface {
	UpdatePosition(ctx context.Context, rideID string, lat, lng float64) error
	LastPosition(ctx context.Context, rideID string) (*RidePosition, error)
	RemovePosition(ctx context.Context, rideID string) error
}

// ConditionsStoreInterface defines the interface for live zone conditions.
type ConditionsStoreInterface interface {
	TrafficIndex(ctx context.Context, cityKey, zoneName string) (float64, bool)
	Get(ctx context.Context, cityKey, zoneName string) (*ZoneConditions, error)
	Set(ctx context.Context, cityKey, zoneName string, cond ZoneConditions) error
}

// Ensure concrete types implement interfaces.
var (
	_ LockStoreInterface       = (*LockStore)(nil)
	_ PositionStoreInterface   = (*PositionStore)(nil)
	_ ConditionsStoreInterface = (*ConditionsStore)(nil)
)
