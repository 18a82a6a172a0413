package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// ZoneConditions is the live, externally-simulated copy of a zone's demand,
// traffic and driver-count signals. The registry's zone data only seeds these
// values.
type ZoneConditions struct {
	DemandScore      float64
	TrafficIndex     float64
	AvailableDrivers int
}

// ConditionsStore reads and writes live zone conditions in Redis. All reads
// fail open: a missing key or Redis error means "no live signal" and callers
// fall back to their defaults.
type ConditionsStore struct {
	client *redis.Client
}

// NewConditionsStore creates a new ConditionsStore.
func NewConditionsStore(client *redis.Client) *ConditionsStore {
	return &ConditionsStore{client: client}
}

func conditionsKey(cityKey, zoneName string) string {
	return fmt.Sprintf("conditions:%s:%s", cityKey, zoneName)
}

// TrafficIndex returns the live traffic index for a zone. The second return
// is false when no live signal is available.
func (s *ConditionsStore) TrafficIndex(ctx context.Context, cityKey, zoneName string) (float64, bool) {
	val, err := s.client.HGet(ctx, conditionsKey(cityKey, zoneName), "traffic").Result()
	if err != nil {
		return 0, false
	}
	idx, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return idx, true
}

// Get returns the full live conditions for a zone, if present.
func (s *ConditionsStore) Get(ctx context.Context, cityKey, zoneName string) (*ZoneConditions, error) {
	fields, err := s.client.HGetAll(ctx, conditionsKey(cityKey, zoneName)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}

	var cond ZoneConditions
	cond.DemandScore, _ = strconv.ParseFloat(fields["demand"], 64)
	cond.TrafficIndex, _ = strconv.ParseFloat(fields["traffic"], 64)
	cond.AvailableDrivers, _ = strconv.Atoi(fields["drivers"])
	return &cond, nil
}

// Set writes the live conditions for a zone. Called by the external demand
// simulator, not by the core.
func (s *ConditionsStore) Set(ctx context.Context, cityKey, zoneName string, cond ZoneConditions) error {
	return s.client.HSet(ctx, conditionsKey(cityKey, zoneName), map[string]any{
		"demand":  cond.DemandScore,
		"traffic": cond.TrafficIndex,
		"drivers": cond.AvailableDrivers,
	}).Err()
}
