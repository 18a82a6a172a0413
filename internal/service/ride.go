package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"hail/internal/domain"
	"hail/internal/pricing"
	"hail/internal/redis"
	"hail/internal/repository"
)

const (
	driverCommissionRate = 0.20
	longRideBonusKm      = 15.0
	longRideBonusAmount  = 20.0

	acceptLockTTL = 10 * time.Second
)

// RideService owns the ride lifecycle state machine: it creates pending
// rides from fare quotes and guards every status transition.
type RideService struct {
	rideRepo    repository.RideRepository
	earningRepo repository.EarningRepository
	engine      *pricing.Engine
	notifier    *NotificationService
	locks       redis.LockStoreInterface
}

// NewRideService creates a new RideService. notifier and locks may be nil.
func NewRideService(
	rideRepo repository.RideRepository,
	earningRepo repository.EarningRepository,
	engine *pricing.Engine,
	notifier *NotificationService,
	locks redis.LockStoreInterface,
) *RideService {
	return &RideService{
		rideRepo:    rideRepo,
		earningRepo: earningRepo,
		engine:      engine,
		notifier:    notifier,
		locks:       locks,
	}
}

// BookingRequest contains the validated parameters for a quote or a new ride.
type BookingRequest struct {
	PassengerID      int64
	PickupAddress    string
	DropAddress      string
	DistanceKm       float64
	SimulatedPeak    *bool
	SimulatedTraffic *float64
	ScheduledAt      time.Time // zero for immediate rides
}

func (s *RideService) validateBooking(req BookingRequest) error {
	if strings.TrimSpace(req.PickupAddress) == "" {
		return ErrEmptyPickupAddress
	}
	if strings.TrimSpace(req.DropAddress) == "" {
		return ErrEmptyDropAddress
	}
	if req.DistanceKm < 0 {
		return ErrNegativeDistance
	}
	if req.SimulatedTraffic != nil && (*req.SimulatedTraffic < 0 || *req.SimulatedTraffic > 10) {
		return ErrTrafficOutOfRange
	}
	if req.PassengerID <= 0 {
		return ErrInvalidPassengerID
	}
	if !req.ScheduledAt.IsZero() && req.ScheduledAt.Before(time.Now()) {
		return ErrScheduledInPast
	}
	return nil
}

// Predict returns a fare quote without creating a ride.
func (s *RideService) Predict(ctx context.Context, req BookingRequest) (*domain.FareQuote, error) {
	if err := s.validateBooking(req); err != nil {
		return nil, err
	}

	quote := s.engine.Quote(ctx, pricing.QuoteInput{
		PickupAddress:    req.PickupAddress,
		DropAddress:      req.DropAddress,
		DistanceKmHint:   req.DistanceKm,
		SimulatedPeak:    req.SimulatedPeak,
		SimulatedTraffic: req.SimulatedTraffic,
	})
	return &quote, nil
}

// CreateRide quotes the booking and persists a pending ride carrying the
// quote's pricing fields.
func (s *RideService) CreateRide(ctx context.Context, req BookingRequest) (*domain.Ride, error) {
	quote, err := s.Predict(ctx, req)
	if err != nil {
		return nil, err
	}

	ride := &domain.Ride{
		ID:               uuid.New().String(),
		PassengerID:      req.PassengerID,
		PickupAddress:    req.PickupAddress,
		DropAddress:      req.DropAddress,
		CityKey:          quote.CityKey,
		DistanceKm:       quote.DistanceKm,
		BaseFare:         quote.BaseFare,
		SurgeMultiplier:  quote.SurgeMultiplier,
		FinalFare:        quote.FinalFare,
		WaitTimeMin:      quote.WaitTimeMin,
		DurationMin:      quote.DurationMin,
		CancellationProb: quote.CancellationProb,
		CarbonKg:         quote.CarbonKg,
		FairnessScore:    quote.FairnessScore,
		RouteCalculated:  quote.RouteCalculated,
		Status:           domain.RideStatusPending,
		ScheduledAt:      req.ScheduledAt,
		CreatedAt:        time.Now(),
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyRideRequested(ctx, ride)
	}

	return ride, nil
}

// AcceptRide assigns a driver to a pending ride. The repository's
// compare-and-set is the correctness check: of two concurrent accepts on the
// same ride, exactly one succeeds and the other gets a conflict. The Redis
// lock, when configured, only keeps the second driver out of the critical
// section early.
func (s *RideService) AcceptRide(ctx context.Context, rideID, driverID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	if s.locks != nil {
		locked, err := s.locks.AcquireRideLock(ctx, rideID, acceptLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrRideNotPending
		}
		defer func() { _ = s.locks.ReleaseRideLock(ctx, rideID) }()
	}

	ride, err := s.rideRepo.UpdateStatus(ctx, rideID, repository.StatusUpdate{
		From:     domain.RideStatusPending,
		To:       domain.RideStatusAccepted,
		DriverID: driverID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrRideNotPending
		}
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyStatusChanged(ctx, ride)
	}

	return ride, nil
}

// UpdateStatus progresses a ride through the driver-owned transitions
// accepted -> in_progress -> completed. Completion creates the driver's
// earning record and asks the passenger to rate the ride.
func (s *RideService) UpdateStatus(ctx context.Context, rideID, driverID string, newStatus domain.RideStatus) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}
	if !domain.ValidRideStatus(newStatus) {
		return nil, ErrUnknownStatus
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if ride.Status.IsTerminal() {
		return nil, ErrRideTerminal
	}
	if ride.DriverID != driverID {
		return nil, ErrNotAssignedDriver
	}

	var from domain.RideStatus
	switch newStatus {
	case domain.RideStatusInProgress:
		from = domain.RideStatusAccepted
	case domain.RideStatusCompleted:
		from = domain.RideStatusInProgress
	default:
		return nil, ErrInvalidTransition
	}
	if ride.Status != from {
		return nil, ErrInvalidTransition
	}

	updated, err := s.rideRepo.UpdateStatus(ctx, rideID, repository.StatusUpdate{
		From: from,
		To:   newStatus,
	})
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	if newStatus == domain.RideStatusCompleted {
		if err := s.recordEarning(ctx, updated); err != nil {
			return nil, err
		}
	}

	if s.notifier != nil {
		s.notifier.NotifyStatusChanged(ctx, updated)
	}

	return updated, nil
}

// CancelRide cancels a pending or accepted ride. Only the booking passenger
// may cancel; rides that already departed cannot be cancelled.
func (s *RideService) CancelRide(ctx context.Context, rideID string, passengerID int64) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if passengerID <= 0 {
		return nil, ErrInvalidPassengerID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if ride.PassengerID != passengerID {
		return nil, ErrNotRideOwner
	}
	if ride.Status.IsTerminal() {
		return nil, ErrRideTerminal
	}
	if ride.Status != domain.RideStatusPending && ride.Status != domain.RideStatusAccepted {
		return nil, ErrInvalidTransition
	}

	updated, err := s.rideRepo.UpdateStatus(ctx, rideID, repository.StatusUpdate{
		From:        ride.Status,
		To:          domain.RideStatusCancelled,
		CancelledAt: time.Now(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyRideCancelled(ctx, updated)
	}

	return updated, nil
}

// GetRide retrieves a ride by ID.
func (s *RideService) GetRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	return s.rideRepo.GetByID(ctx, rideID)
}

// GetAllRides retrieves recent rides.
func (s *RideService) GetAllRides(ctx context.Context) ([]*domain.Ride, error) {
	return s.rideRepo.GetAll(ctx)
}

// DriverEarnings retrieves all earnings for a driver.
func (s *RideService) DriverEarnings(ctx context.Context, driverID string) ([]*domain.DriverEarning, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}
	return s.earningRepo.GetByDriver(ctx, driverID)
}

// recordEarning creates the completion payout: 20% commission to the
// platform, a fixed bonus for long rides, the rest to the driver. The
// repository's uniqueness rule on ride id makes a double completion harmless.
func (s *RideService) recordEarning(ctx context.Context, ride *domain.Ride) error {
	commission := round2(ride.FinalFare * driverCommissionRate)
	bonus := 0.0
	if ride.DistanceKm > longRideBonusKm {
		bonus = longRideBonusAmount
	}

	earning := &domain.DriverEarning{
		ID:          uuid.New().String(),
		DriverID:    ride.DriverID,
		RideID:      ride.ID,
		GrossAmount: ride.FinalFare,
		Commission:  commission,
		BonusAmount: bonus,
		NetEarnings: round2(ride.FinalFare - commission + bonus),
		CreatedAt:   time.Now(),
	}

	if err := s.earningRepo.Create(ctx, earning); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil
		}
		return err
	}
	return nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
