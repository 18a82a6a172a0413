// Package geo provides great-circle math over WGS-ish coordinates.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for haversine distances.
const EarthRadiusKm = 6371.0

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// DistanceKm returns the haversine distance in kilometers between two points
// given in degrees. Identical coordinates yield exactly 0.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	if lat1 == lat2 && lng1 == lng2 {
		return 0
	}

	lat1Rad := degreesToRadians(lat1)
	lat2Rad := degreesToRadians(lat2)
	deltaLat := degreesToRadians(lat2 - lat1)
	deltaLng := degreesToRadians(lng2 - lng1)

	a := math.Pow(math.Sin(deltaLat/2), 2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Pow(math.Sin(deltaLng/2), 2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// BearingDeg returns the flat-plane heading in degrees from the first point
// to the second, normalized to [0, 360). It is a display heading for live
// tracking, not a navigation-grade initial bearing.
func BearingDeg(lat1, lng1, lat2, lng2 float64) float64 {
	deg := math.Atan2(lng2-lng1, lat2-lat1) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}
