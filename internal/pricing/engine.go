// Package pricing implements the fare quotation engine. Every output is a
// deterministic heuristic formula over the city rate card and the current
// demand, peak and traffic signals; there is no learned model behind it.
package pricing

import (
	"context"
	"math"
	"time"

	"hail/internal/domain"
	"hail/internal/geo"
	"hail/internal/registry"
)

const (
	peakHourStart = 17
	peakHourEnd   = 19 // inclusive: 19:xx still counts as peak

	peakDemand    = 150.0
	offPeakDemand = 50.0
	fixedSupply   = 30.0

	defaultTrafficIndex = 5.0
	freeFlowSpeedKmh    = 30.0
	carbonKgPerKm       = 0.12
)

// ConditionsReader supplies the live traffic index for a zone. Implementations
// are expected to fail open: when the signal is unavailable the engine falls
// back to the default traffic index.
type ConditionsReader interface {
	TrafficIndex(ctx context.Context, cityKey, zoneName string) (float64, bool)
}

// Engine computes fare quotes from the static registry and live conditions.
type Engine struct {
	registry   *registry.Registry
	conditions ConditionsReader
	now        func() time.Time
}

// NewEngine creates an Engine. conditions may be nil, in which case the
// default traffic index is used whenever the caller supplies none.
func NewEngine(reg *registry.Registry, conditions ConditionsReader) *Engine {
	return &Engine{
		registry:   reg,
		conditions: conditions,
		now:        time.Now,
	}
}

// WithClock overrides the engine's clock. Used by tests to pin the peak flag.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// QuoteInput carries the validated booking parameters into the engine.
// DistanceKmHint is the client's own estimate; it is overridden whenever both
// endpoints resolve to known zones. SimulatedPeak and SimulatedTraffic are
// demo knobs that replace the clock-derived peak flag and the live traffic
// index when set.
type QuoteInput struct {
	PickupAddress    string
	DropAddress      string
	DistanceKmHint   float64
	SimulatedPeak    *bool
	SimulatedTraffic *float64
}

// Quote produces a fare quote for the given booking. Inputs are assumed
// validated: non-negative distance hint, traffic within [0, 10].
func (e *Engine) Quote(ctx context.Context, in QuoteInput) domain.FareQuote {
	city := e.registry.CityInfo(e.registry.ResolveCity(in.PickupAddress))

	// Known zones give more trustworthy distance than free-text estimates,
	// so a successful double resolution overrides the client hint.
	distance := in.DistanceKmHint
	routeCalculated := false
	pickupZone, pickupOK := e.registry.FindZone(city, in.PickupAddress)
	dropZone, dropOK := e.registry.FindZone(city, in.DropAddress)
	if pickupOK && dropOK {
		distance = geo.DistanceKm(pickupZone.Lat, pickupZone.Lng, dropZone.Lat, dropZone.Lng)
		routeCalculated = true
	}
	distance = round2(distance)

	peak := e.isPeak(in.SimulatedPeak)
	traffic := e.trafficIndex(ctx, city.Key, pickupZone.Name, in.SimulatedTraffic)

	demand := offPeakDemand
	if peak {
		demand = peakDemand
	}
	ratio := demandSupplyRatio(demand, fixedSupply)

	surge := SurgeMultiplier(ratio, peak, traffic)
	wait := WaitTimeMin(demand, fixedSupply)
	finalFare := (city.BaseFare + distance*city.RatePerKm) * surge

	return domain.FareQuote{
		CityKey:          city.Key,
		DistanceKm:       distance,
		BaseFare:         city.BaseFare,
		SurgeMultiplier:  round2(surge),
		FinalFare:        round2(finalFare),
		WaitTimeMin:      round1(wait),
		DurationMin:      round1(DurationMin(distance, traffic)),
		CancellationProb: round2(CancellationProb(surge, wait)),
		CarbonKg:         round2(CarbonKg(distance)),
		FairnessScore:    round1(FairnessScore(surge, wait)),
		IsPeak:           peak,
		TrafficIndex:     round1(traffic),
		RouteCalculated:  routeCalculated,
	}
}

func (e *Engine) isPeak(simulated *bool) bool {
	if simulated != nil {
		return *simulated
	}
	hour := e.now().Hour()
	return hour >= peakHourStart && hour <= peakHourEnd
}

func (e *Engine) trafficIndex(ctx context.Context, cityKey, zoneName string, simulated *float64) float64 {
	if simulated != nil {
		return *simulated
	}
	if e.conditions != nil && zoneName != "" {
		if idx, ok := e.conditions.TrafficIndex(ctx, cityKey, zoneName); ok {
			return idx
		}
	}
	return defaultTrafficIndex
}

// demandSupplyRatio treats zero supply as 1 to stay defined.
func demandSupplyRatio(demand, supply float64) float64 {
	if supply <= 0 {
		supply = 1
	}
	return demand / supply
}

// SurgeMultiplier starts at 1.0 and stacks additive bumps for excess demand,
// peak hours and heavy traffic.
func SurgeMultiplier(ratio float64, peak bool, traffic float64) float64 {
	surge := 1.0
	if ratio > 1.5 {
		surge += 0.3
	}
	if peak {
		surge += 0.15
	}
	if traffic > 7 {
		surge += 0.1
	}
	return surge
}

// WaitTimeMin predicts pickup wait in minutes: monotonically increasing with
// the demand/supply ratio, floored at 2 and capped at 15.
func WaitTimeMin(demand, supply float64) float64 {
	ratio := demandSupplyRatio(demand, supply)
	return math.Min(15, 2+ratio*3)
}

// DurationMin predicts trip duration in minutes. The traffic index linearly
// degrades an assumed 30 km/h free-flow speed.
func DurationMin(distanceKm, traffic float64) float64 {
	effectiveSpeed := freeFlowSpeedKmh / (traffic/2 + 1)
	return distanceKm / effectiveSpeed * 60
}

// CarbonKg estimates trip emissions in kilograms.
func CarbonKg(distanceKm float64) float64 {
	return distanceKm * carbonKgPerKm
}

// CancellationProb estimates the chance the passenger bails, capped at 0.9.
func CancellationProb(surge, waitMin float64) float64 {
	return math.Min(0.9, waitMin*0.05+(surge-1)*0.2)
}

// FairnessScore is the 1-10 pricing-transparency metric shown to passengers,
// inversely related to surge and wait time.
func FairnessScore(surge, waitMin float64) float64 {
	score := 10 - (surge-1)*5 - waitMin/10
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
