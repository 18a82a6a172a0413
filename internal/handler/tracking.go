package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"hail/internal/service"
)

// TrackingHandler handles HTTP requests for live ride tracking.
type TrackingHandler struct {
	rideService     *service.RideService
	trackingService *service.TrackingService
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(rideService *service.RideService, trackingService *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		rideService:     rideService,
		trackingService: trackingService,
	}
}

// PointResponse is a GPS coordinate in a response.
type PointResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TrackingResponse is the HTTP response for GET /v1/rides/:id/track.
type TrackingResponse struct {
	RideID     string         `json:"ride_id"`
	Status     string         `json:"status"`
	Position   *PointResponse `json:"position"`
	Progress   float64        `json:"progress"`
	ETAMin     float64        `json:"eta_min"`
	SpeedKmh   float64        `json:"speed_kmh"`
	HeadingDeg float64        `json:"heading_deg"`
}

// GPSResponse is the HTTP response for GET /v1/rides/:id/gps.
type GPSResponse struct {
	TrackingResponse
	Trail     []PointResponse `json:"trail"`
	LastKnown *PointResponse  `json:"last_known,omitempty"`
}

func toPoint(p *service.Point) *PointResponse {
	if p == nil {
		return nil
	}
	return &PointResponse{Lat: p.Lat, Lng: p.Lng}
}

func toTrackingResponse(snap service.TrackingSnapshot) TrackingResponse {
	return TrackingResponse{
		RideID:     snap.RideID,
		Status:     string(snap.Status),
		Position:   toPoint(snap.Position),
		Progress:   snap.Progress,
		ETAMin:     snap.ETAMin,
		SpeedKmh:   snap.SpeedKmh,
		HeadingDeg: snap.HeadingDeg,
	}
}

// Track handles GET /v1/rides/:id/track
func (h *TrackingHandler) Track(c *gin.Context) {
	ride, err := h.rideService.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	snap := h.trackingService.Track(ride, time.Now())
	respondJSON(c, 200, toTrackingResponse(snap))
}

// GPS handles GET /v1/rides/:id/gps
func (h *TrackingHandler) GPS(c *gin.Context) {
	ride, err := h.rideService.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	snap := h.trackingService.GPS(c.Request.Context(), ride, time.Now())

	response := GPSResponse{
		TrackingResponse: toTrackingResponse(snap.TrackingSnapshot),
		Trail:            make([]PointResponse, 0, len(snap.Trail)),
		LastKnown:        toPoint(snap.LastKnown),
	}
	for _, p := range snap.Trail {
		response.Trail = append(response.Trail, PointResponse{Lat: p.Lat, Lng: p.Lng})
	}

	respondJSON(c, 200, response)
}
