package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const ridePositionKey = "rides:positions"

// RidePosition is the last simulated position emitted for a ride.
type RidePosition struct {
	RideID string
	Lat    float64
	Lng    float64
}

// PositionStore caches the last simulated ride position in a Redis geo set so
// the GPS endpoint can serve the previous fix alongside the fresh one.
type PositionStore struct {
	client *redis.Client
}

// NewPositionStore creates a new PositionStore.
func NewPositionStore(client *redis.Client) *PositionStore {
	return &PositionStore{client: client}
}

// UpdatePosition stores a ride's latest position using GEOADD.
func (s *PositionStore) UpdatePosition(ctx context.Context, rideID string, lat, lng float64) error {
	return s.client.GeoAdd(ctx, ridePositionKey, &redis.GeoLocation{
		Name:      rideID,
		Longitude: lng,
		Latitude:  lat,
	}).Err()
}

// LastPosition returns the previously cached position for a ride, or nil when
// none has been recorded.
func (s *PositionStore) LastPosition(ctx context.Context, rideID string) (*RidePosition, error) {
	positions, err := s.client.GeoPos(ctx, ridePositionKey, rideID).Result()
	if err != nil {
		return nil, err
	}
	if len(positions) == 0 || positions[0] == nil {
		return nil, nil
	}
	return &RidePosition{
		RideID: rideID,
		Lat:    positions[0].Latitude,
		Lng:    positions[0].Longitude,
	}, nil
}

// RemovePosition drops a ride's cached position once the ride ends.
func (s *PositionStore) RemovePosition(ctx context.Context, rideID string) error {
	return s.client.ZRem(ctx, ridePositionKey, rideID).Err()
}
