// Package registry holds the static city and zone reference data used by the
// pricing engine and the tracking simulator. The data is loaded once at
// process start and never mutated; live demand/traffic drift is read from the
// conditions store instead.
package registry

import (
	"strings"

	"hail/internal/domain"
)

// Registry resolves free-text addresses to cities and zone names to zones.
type Registry struct {
	cities []domain.City
	byKey  map[string]*domain.City
	tokens map[string][]string
}

// New creates a Registry seeded with the built-in city table.
// The first city is the primary city and the fallback for every resolver.
func New() *Registry {
	r := &Registry{
		cities: cityTable(),
		byKey:  make(map[string]*domain.City),
		tokens: cityTokens(),
	}
	for i := range r.cities {
		r.byKey[r.cities[i].Key] = &r.cities[i]
	}
	return r
}

// DefaultCity returns the primary city.
func (r *Registry) DefaultCity() *domain.City {
	return &r.cities[0]
}

// Cities returns all cities in registration order.
func (r *Registry) Cities() []domain.City {
	return r.cities
}

// CityInfo returns the city for key, falling back to the default city when
// the key is unrecognized. It never fails.
func (r *Registry) CityInfo(key string) *domain.City {
	if city, ok := r.byKey[strings.ToLower(key)]; ok {
		return city
	}
	return r.DefaultCity()
}

// ResolveCity classifies a free-text address into a city key by scanning a
// fixed token table (city name plus a few landmark substrings per city).
// This is a heuristic classifier, not a geocoder: the first city whose token
// appears in the address wins, and unmatched addresses fall back to the
// default city.
func (r *Registry) ResolveCity(address string) string {
	addr := strings.ToLower(address)
	for _, city := range r.cities {
		for _, token := range r.tokens[city.Key] {
			if strings.Contains(addr, token) {
				return city.Key
			}
		}
	}
	return r.DefaultCity().Key
}

// FindZone looks up a zone by name within a city. The match is deliberately
// loose: it succeeds when either string contains the other, case-insensitive,
// so "Hauz Khas Village" still hits the "Hauz Khas" zone. Short names can
// cross-match ("Nagar" hits several Chennai zones); callers fall back to
// their own distance estimate when no zone matches.
func (r *Registry) FindZone(city *domain.City, name string) (domain.Zone, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return domain.Zone{}, false
	}
	for _, zone := range city.Zones {
		zn := strings.ToLower(zone.Name)
		if strings.Contains(zn, needle) || strings.Contains(needle, zn) {
			return zone, true
		}
	}
	return domain.Zone{}, false
}
