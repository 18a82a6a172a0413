package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hail/internal/domain"
	"hail/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService *service.RideService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// AcceptRideRequest is the HTTP request body for accepting a ride.
type AcceptRideRequest struct {
	DriverID string `json:"driver_id"`
}

// UpdateStatusRequest is the HTTP request body for a driver status update.
type UpdateStatusRequest struct {
	DriverID string `json:"driver_id"`
	Status   string `json:"status"`
}

// CancelRideRequest is the HTTP request body for a passenger cancellation.
type CancelRideRequest struct {
	PassengerID int64 `json:"passenger_id"`
}

// RideResponse is the HTTP representation of a ride.
type RideResponse struct {
	ID               string  `json:"id"`
	PassengerID      int64   `json:"passenger_id"`
	DriverID         string  `json:"driver_id,omitempty"`
	PickupAddress    string  `json:"pickup_address"`
	DropAddress      string  `json:"drop_address"`
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
	RouteCalculated  bool    `json:"route_calculated"`
	Status           string  `json:"status"`
	ScheduledAt      string  `json:"scheduled_at,omitempty"`
	CreatedAt        string  `json:"created_at"`
	CancelledAt      string  `json:"cancelled_at,omitempty"`
}

func toRideResponse(ride *domain.Ride) RideResponse {
	resp := RideResponse{
		ID:               ride.ID,
		PassengerID:      ride.PassengerID,
		DriverID:         ride.DriverID,
		PickupAddress:    ride.PickupAddress,
		DropAddress:      ride.DropAddress,
		City:             ride.CityKey,
		DistanceKm:       ride.DistanceKm,
		BaseFare:         ride.BaseFare,
		SurgeMultiplier:  ride.SurgeMultiplier,
		FinalFare:        ride.FinalFare,
		WaitTimeMin:      ride.WaitTimeMin,
		DurationMin:      ride.DurationMin,
		CancellationProb: ride.CancellationProb,
		CarbonKg:         ride.CarbonKg,
		FairnessScore:    ride.FairnessScore,
		RouteCalculated:  ride.RouteCalculated,
		Status:           string(ride.Status),
		CreatedAt:        ride.CreatedAt.Format(time.RFC3339),
	}
	if !ride.ScheduledAt.IsZero() {
		resp.ScheduledAt = ride.ScheduledAt.Format(time.RFC3339)
	}
	if !ride.CancelledAt.IsZero() {
		resp.CancelledAt = ride.CancelledAt.Format(time.RFC3339)
	}
	return resp
}

// CreateRide handles POST /v1/rides
func (h *RideHandler) CreateRide(c *gin.Context) {
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

	ride, err := h.rideService.CreateRide(c.Request.Context(), svcReq)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRideResponse(ride))
}

// AcceptRide handles POST /v1/rides/:id/accept
func (h *RideHandler) AcceptRide(c *gin.Context) {
	var req AcceptRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Kind: "validation"})
		return
	}

	ride, err := h.rideService.AcceptRide(c.Request.Context(), c.Param("id"), req.DriverID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// UpdateStatus handles PATCH /v1/rides/:id/status
func (h *RideHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Kind: "validation"})
		return
	}

	ride, err := h.rideService.UpdateStatus(c.Request.Context(), c.Param("id"), req.DriverID, domain.RideStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// CancelRide handles POST /v1/rides/:id/cancel
func (h *RideHandler) CancelRide(c *gin.Context) {
	var req CancelRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Kind: "validation"})
		return
	}

	ride, err := h.rideService.CancelRide(c.Request.Context(), c.Param("id"), req.PassengerID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// GetRide handles GET /v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.rideService.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// GetAll handles GET /v1/rides
func (h *RideHandler) GetAll(c *gin.Context) {
	rides, err := h.rideService.GetAllRides(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RideResponse, 0, len(rides))
	for _, ride := range rides {
		response = append(response, toRideResponse(ride))
	}

	c.JSON(http.StatusOK, response)
}

// EarningResponse is the HTTP representation of a driver earning.
type EarningResponse struct {
	ID          string  `json:"id"`
	DriverID    string  `json:"driver_id"`
	RideID      string  `json:"ride_id"`
	GrossAmount float64 `json:"gross_amount"`
	Commission  float64 `json:"commission"`
	BonusAmount float64 `json:"bonus_amount"`
	NetEarnings float64 `json:"net_earnings"`
	CreatedAt   string  `json:"created_at"`
}

// GetDriverEarnings handles GET /v1/drivers/:id/earnings
func (h *RideHandler) GetDriverEarnings(c *gin.Context) {
	earnings, err := h.rideService.DriverEarnings(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]EarningResponse, 0, len(earnings))
	for _, e := range earnings {
		response = append(response, EarningResponse{
			ID:          e.ID,
			DriverID:    e.DriverID,
			RideID:      e.RideID,
			GrossAmount: e.GrossAmount,
			Commission:  e.Commission,
			BonusAmount: e.BonusAmount,
			NetEarnings: e.NetEarnings,
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, response)
}
