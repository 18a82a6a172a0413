package domain

// FareQuote is the ephemeral output of the pricing engine for a hypothetical
// or about-to-be-created ride. It is never persisted on its own; its pricing
// fields are copied onto the Ride at creation time.
type FareQuote struct {
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
	IsPeak           bool
	TrafficIndex     float64
	RouteCalculated  bool // true when zone coordinates overrode the client distance hint
}
