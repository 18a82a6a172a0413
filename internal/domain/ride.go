package domain

import "time"

// RideStatus represents the current status of a ride.
type RideStatus string

const (
	RideStatusPending    RideStatus = "pending"
	RideStatusAccepted   RideStatus = "accepted"
	RideStatusInProgress RideStatus = "in_progress"
	RideStatusCompleted  RideStatus = "completed"
	RideStatusCancelled  RideStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are allowed from the status.
func (s RideStatus) IsTerminal() bool {
	return s == RideStatusCompleted || s == RideStatusCancelled
}

// ValidRideStatus reports whether s is one of the five known statuses.
func ValidRideStatus(s RideStatus) bool {
	switch s {
	case RideStatusPending, RideStatusAccepted, RideStatusInProgress,
		RideStatusCompleted, RideStatusCancelled:
		return true
	}
	return false
}

// Ride represents a ride request in the system.
// DriverID is empty until a driver accepts the ride. Once a ride reaches a
// terminal status it is never mutated again; only linked earning records are
// created as a side effect of completion.
type Ride struct {
	ID               string
	PassengerID      int64
	DriverID         string
	PickupAddress    string
	DropAddress      string
	CityKey          string
	DistanceKm       float64
	BaseFare         float64
	SurgeMultiplier  float64
	FinalFare        float64
	WaitTimeMin      float64
	DurationMin      float64
	CancellationProb float64 // 0-0.9
	CarbonKg         float64
	FairnessScore    float64 // 1-10
	RouteCalculated  bool
	Status           RideStatus
	ScheduledAt      time.Time // zero for immediate rides
	CreatedAt        time.Time
	CancelledAt      time.Time
}
