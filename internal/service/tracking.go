package service

import (
	"context"
	"log"
	"math"
	"math/rand"
	"time"

	"hail/internal/domain"
	"hail/internal/geo"
	"hail/internal/redis"
	"hail/internal/registry"
)

const (
	// Fraction of the predicted trip time modeled as the driver-approaching
	// phase, mapped onto the progress range [0, 0.2).
	approachTimeShare     = 0.3
	approachProgressShare = 0.2

	// Bounded GPS noise per axis, in degrees.
	jitterDeg = 0.001

	// City-driving speed range used for ETA, km/h.
	minSpeedKmh = 25.0
	maxSpeedKmh = 40.0

	trailPoints = 12
)

// Point is a GPS coordinate.
type Point struct {
	Lat float64
	Lng float64
}

// TrackingSnapshot is the live view of a ride's simulated position.
// Position carries bounded random jitter to emulate GPS noise, so two
// snapshots of the same instant differ slightly.
type TrackingSnapshot struct {
	RideID     string
	Status     domain.RideStatus
	Position   *Point
	Progress   float64 // 0 at pickup, 1 at drop
	ETAMin     float64
	SpeedKmh   float64
	HeadingDeg float64
}

// GPSSnapshot is the richer tracking view with the interpolated point trail
// travelled so far and the last cached fix.
type GPSSnapshot struct {
	TrackingSnapshot
	Trail     []Point
	LastKnown *Point
}

// TrackingService simulates ride progress between resolved zone coordinates.
// It never fails: rides whose endpoints cannot be resolved to known zones get
// an empty trail and zero progress.
type TrackingService struct {
	registry  *registry.Registry
	positions redis.PositionStoreInterface
}

// NewTrackingService creates a new TrackingService. positions may be nil.
func NewTrackingService(reg *registry.Registry, positions redis.PositionStoreInterface) *TrackingService {
	return &TrackingService{registry: reg, positions: positions}
}

// Track returns the interpolated position, ETA and speed for a ride at the
// given instant.
func (s *TrackingService) Track(ride *domain.Ride, now time.Time) TrackingSnapshot {
	snapshot := TrackingSnapshot{
		RideID: ride.ID,
		Status: ride.Status,
	}

	city := s.registry.CityInfo(ride.CityKey)
	pickup, pickupOK := s.registry.FindZone(city, ride.PickupAddress)
	drop, dropOK := s.registry.FindZone(city, ride.DropAddress)

	if !pickupOK || !dropOK {
		if pickupOK {
			snapshot.Position = &Point{Lat: pickup.Lat, Lng: pickup.Lng}
		}
		return snapshot
	}

	progress := progressFraction(ride, now)
	speed := minSpeedKmh + rand.Float64()*(maxSpeedKmh-minSpeedKmh)
	remaining := ride.DistanceKm * (1 - progress)

	pos := interpolate(pickup.Lat, pickup.Lng, drop.Lat, drop.Lng, progress)
	snapshot.Position = &pos
	snapshot.Progress = round3(progress)
	snapshot.SpeedKmh = round1(speed)
	snapshot.ETAMin = round1(remaining / speed * 60)
	snapshot.HeadingDeg = round1(geo.BearingDeg(pickup.Lat, pickup.Lng, drop.Lat, drop.Lng))

	return snapshot
}

// GPS returns the tracking snapshot plus the travelled point trail. The
// current fix is cached fire-and-forget so the next call can serve it as the
// previous position.
func (s *TrackingService) GPS(ctx context.Context, ride *domain.Ride, now time.Time) GPSSnapshot {
	snapshot := GPSSnapshot{TrackingSnapshot: s.Track(ride, now)}

	city := s.registry.CityInfo(ride.CityKey)
	pickup, pickupOK := s.registry.FindZone(city, ride.PickupAddress)
	drop, dropOK := s.registry.FindZone(city, ride.DropAddress)
	if !pickupOK || !dropOK {
		return snapshot
	}

	steps := trailPoints
	for i := 0; i <= steps; i++ {
		f := snapshot.Progress * float64(i) / float64(steps)
		snapshot.Trail = append(snapshot.Trail, interpolate(pickup.Lat, pickup.Lng, drop.Lat, drop.Lng, f))
	}

	if s.positions != nil {
		if last, err := s.positions.LastPosition(ctx, ride.ID); err == nil && last != nil {
			snapshot.LastKnown = &Point{Lat: last.Lat, Lng: last.Lng}
		}
		if snapshot.Position != nil {
			if err := s.positions.UpdatePosition(ctx, ride.ID, snapshot.Position.Lat, snapshot.Position.Lng); err != nil {
				log.Printf("failed to cache position for ride %s: %v", ride.ID, err)
			}
		}
	}

	return snapshot
}

// progressFraction maps elapsed time onto the 0..1 trip progress. The
// approach phase (driver heading to pickup) covers the first 30% of the
// predicted duration and the first 20% of the progress range; the trip
// itself covers the remaining 80%.
func progressFraction(ride *domain.Ride, now time.Time) float64 {
	elapsedMin := now.Sub(ride.CreatedAt).Minutes()
	if elapsedMin < 0 {
		elapsedMin = 0
	}
	total := ride.DurationMin

	switch ride.Status {
	case domain.RideStatusAccepted:
		approach := total * approachTimeShare
		if approach <= 0 {
			return approachProgressShare
		}
		frac := elapsedMin / approach
		if frac > 1 {
			frac = 1
		}
		return approachProgressShare * frac
	case domain.RideStatusInProgress:
		if total <= 0 {
			return 1
		}
		return approachProgressShare + math.Min(0.8, elapsedMin/total*0.8)
	case domain.RideStatusCompleted:
		return 1
	default:
		return 0
	}
}

// interpolate returns the point at fraction f between two coordinates, with
// bounded random jitter on each axis.
func interpolate(lat1, lng1, lat2, lng2, f float64) Point {
	return Point{
		Lat: lat1 + (lat2-lat1)*f + jitter(),
		Lng: lng1 + (lng2-lng1)*f + jitter(),
	}
}

func jitter() float64 {
	return (rand.Float64()*2 - 1) * jitterDeg
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
