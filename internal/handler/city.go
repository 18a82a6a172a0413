package handler

import (
	"github.com/gin-gonic/gin"

	"hail/internal/registry"
)

// CityHandler serves the static city and zone reference data.
type CityHandler struct {
	registry *registry.Registry
}

// NewCityHandler creates a new CityHandler.
func NewCityHandler(reg *registry.Registry) *CityHandler {
	return &CityHandler{registry: reg}
}

// ZoneResponse is the HTTP representation of a zone.
type ZoneResponse struct {
	Name             string  `json:"name"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	DemandScore      float64 `json:"demand_score"`
	TrafficIndex     float64 `json:"traffic_index"`
	AvailableDrivers int     `json:"available_drivers"`
}

// CityResponse is the HTTP representation of a city rate card.
type CityResponse struct {
	Key       string         `json:"key"`
	Name      string         `json:"name"`
	BaseFare  float64        `json:"base_fare"`
	RatePerKm float64        `json:"rate_per_km"`
	Zones     []ZoneResponse `json:"zones"`
}

// GetAll handles GET /v1/cities
func (h *CityHandler) GetAll(c *gin.Context) {
	cities := h.registry.Cities()

	response := make([]CityResponse, 0, len(cities))
	for _, city := range cities {
		cr := CityResponse{
			Key:       city.Key,
			Name:      city.Name,
			BaseFare:  city.BaseFare,
			RatePerKm: city.RatePerKm,
			Zones:     make([]ZoneResponse, 0, len(city.Zones)),
		}
		for _, zone := range city.Zones {
			cr.Zones = append(cr.Zones, ZoneResponse{
				Name:             zone.Name,
				Lat:              zone.Lat,
				Lng:              zone.Lng,
				DemandScore:      zone.DemandScore,
				TrafficIndex:     zone.TrafficIndex,
				AvailableDrivers: zone.AvailableDrivers,
			})
		}
		response = append(response, cr)
	}

	c.JSON(200, response)
}
