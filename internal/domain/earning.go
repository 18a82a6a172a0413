package domain

import "time"

// DriverEarning is the payout record created exactly once when a ride
// transitions into the completed status.
type DriverEarning struct {
	ID          string
	DriverID    string
	RideID      string
	GrossAmount float64
	Commission  float64
	BonusAmount float64
	NetEarnings float64
	CreatedAt   time.Time
}
