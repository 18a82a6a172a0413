package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hail/internal/service"
)

// FareHandler handles HTTP requests for fare quotes.
type FareHandler struct {
	rideService *service.RideService
}

// NewFareHandler creates a new FareHandler.
func NewFareHandler(rideService *service.RideService) *FareHandler {
	return &FareHandler{rideService: rideService}
}

// BookingRequest is the HTTP request body for quoting or creating a ride.
type BookingRequest struct {
	PickupAddress    string   `json:"pickup_address"`
	DropAddress      string   `json:"drop_address"`
	DistanceKm       float64  `json:"distance_km"`
	PassengerID      int64    `json:"passenger_id"`
	SimulatedTraffic *float64 `json:"simulated_traffic,omitempty"`
	SimulatedPeak    *bool    `json:"simulated_peak,omitempty"`
	ScheduledAt      string   `json:"scheduled_at,omitempty"` // RFC 3339
}

// FareQuoteResponse is the HTTP response for a fare quote.
type FareQuoteResponse struct {
	City             string  `json:"city"`
	DistanceKm       float64 `json:"distance_km"`
	BaseFare         float64 `json:"base_fare"`
	SurgeMultiplier  float64 `json:"surge_multiplier"`
	FinalFare        float64 `json:"final_fare"`
	WaitTimeMin      float64 `json:"wait_time_min"`
	DurationMin      float64 `json:"duration_min"`
	CancellationProb float64 `json:"cancellation_prob"`
	CarbonKg         float64 `json:"carbon_kg"`
	FairnessScore    float64 `json:"fairness_score"`
	IsPeak           bool    `json:"is_peak"`
	TrafficIndex     float64 `json:"traffic_index"`
	RouteCalculated  bool    `json:"route_calculated"`
}

// toServiceRequest converts the HTTP body to a service booking request.
// The scheduled-at timestamp is validated here so a malformed value is a
// clean 400 rather than a silent zero time.
func (r BookingRequest) toServiceRequest() (service.BookingRequest, error) {
	req := service.BookingRequest{
		PassengerID:      r.PassengerID,
		PickupAddress:    r.PickupAddress,
		DropAddress:      r.DropAddress,
		DistanceKm:       r.DistanceKm,
		SimulatedPeak:    r.SimulatedPeak,
		SimulatedTraffic: r.SimulatedTraffic,
	}
	if r.ScheduledAt != "" {
		t, err := time.Parse(time.RFC3339, r.ScheduledAt)
		if err != nil {
			return service.BookingRequest{}, err
		}
		req.ScheduledAt = t
	}
	return req, nil
}

// Predict handles POST /v1/fares/predict
func (h *FareHandler) Predict(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Kind: "validation"})
		return
	}

	svcReq, err := req.toServiceRequest()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid scheduled_at timestamp", Kind: "validation"})
		return
	}

	quote, err := h.rideService.Predict(c.Request.Context(), svcReq)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, FareQuoteResponse{
		City:             quote.CityKey,
		DistanceKm:       quote.DistanceKm,
		BaseFare:         quote.BaseFare,
		SurgeMultiplier:  quote.SurgeMultiplier,
		FinalFare:        quote.FinalFare,
		WaitTimeMin:      quote.WaitTimeMin,
		DurationMin:      quote.DurationMin,
		CancellationProb: quote.CancellationProb,
		CarbonKg:         quote.CarbonKg,
		FairnessScore:    quote.FairnessScore,
		IsPeak:           quote.IsPeak,
		TrafficIndex:     quote.TrafficIndex,
		RouteCalculated:  quote.RouteCalculated,
	})
}
