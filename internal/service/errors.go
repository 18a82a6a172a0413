package service

import "errors"

// Validation errors: malformed or out-of-range request fields, rejected
// before anything reaches the pricing engine or the state machine.
var (
	// ErrEmptyPickupAddress is returned when the pickup address is blank.
	ErrEmptyPickupAddress = errors.New("pickup address must not be empty")

	// ErrEmptyDropAddress is returned when the drop address is blank.
	ErrEmptyDropAddress = errors.New("drop address must not be empty")

	// ErrNegativeDistance is returned when the distance hint is negative.
	ErrNegativeDistance = errors.New("distance must not be negative")

	// ErrTrafficOutOfRange is returned when simulated traffic is outside [0, 10].
	ErrTrafficOutOfRange = errors.New("traffic index must be between 0 and 10")

	// ErrInvalidPassengerID is returned when the passenger id is missing or non-positive.
	ErrInvalidPassengerID = errors.New("invalid passenger id")

	// ErrInvalidRideID is returned when the ride id is empty.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrInvalidDriverID is returned when the driver id is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrUnknownStatus is returned when a status update names an unknown status.
	ErrUnknownStatus = errors.New("unknown ride status")

	// ErrScheduledInPast is returned when a deferred ride is scheduled before now.
	ErrScheduledInPast = errors.New("scheduled time must be in the future")
)

// Permission errors: the caller exists but is not the ride's owner or
// assigned driver.
var (
	// ErrNotRideOwner is returned when a passenger acts on someone else's ride.
	ErrNotRideOwner = errors.New("not the owner of this ride")

	// ErrNotAssignedDriver is returned when a driver acts on a ride assigned to another driver.
	ErrNotAssignedDriver = errors.New("driver not assigned to this ride")
)

// Conflict errors: the transition guard failed because of the ride's current
// status. Retrying the same request cannot succeed.
var (
	// ErrRideNotPending is returned when accepting a ride that is no longer pending.
	ErrRideNotPending = errors.New("ride is not pending")

	// ErrRideTerminal is returned when acting on a completed or cancelled ride.
	ErrRideTerminal = errors.New("ride already completed or cancelled")

	// ErrInvalidTransition is returned when the requested status change is not
	// reachable from the ride's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)
