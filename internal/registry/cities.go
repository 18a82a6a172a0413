package registry

import "hail/internal/domain"

// cityTable returns the built-in rate cards and zones. Demand, traffic and
// driver counts are seed values only; the simulator drifts the live copies.
func cityTable() []domain.City {
	return []domain.City{
		{
			Key:       "delhi",
			Name:      "Delhi NCR",
			BaseFare:  30,
			RatePerKm: 10,
			Zones: []domain.Zone{
				{Name: "Connaught Place", Lat: 28.6315, Lng: 77.2167, DemandScore: 8, TrafficIndex: 7, AvailableDrivers: 12},
				{Name: "Hauz Khas", Lat: 28.5494, Lng: 77.2001, DemandScore: 6, TrafficIndex: 5, AvailableDrivers: 9},
				{Name: "Karol Bagh", Lat: 28.6519, Lng: 77.1909, DemandScore: 5, TrafficIndex: 6, AvailableDrivers: 7},
				{Name: "Dwarka", Lat: 28.5921, Lng: 77.0460, DemandScore: 4, TrafficIndex: 4, AvailableDrivers: 6},
				{Name: "Saket", Lat: 28.5245, Lng: 77.2066, DemandScore: 5, TrafficIndex: 5, AvailableDrivers: 8},
			},
		},
		{
			Key:       "mumbai",
			Name:      "Mumbai",
			BaseFare:  35,
			RatePerKm: 12,
			Zones: []domain.Zone{
				{Name: "Bandra", Lat: 19.0596, Lng: 72.8295, DemandScore: 8, TrafficIndex: 8, AvailableDrivers: 14},
				{Name: "Andheri", Lat: 19.1136, Lng: 72.8697, DemandScore: 7, TrafficIndex: 7, AvailableDrivers: 11},
				{Name: "Colaba", Lat: 18.9067, Lng: 72.8147, DemandScore: 5, TrafficIndex: 6, AvailableDrivers: 6},
				{Name: "Powai", Lat: 19.1176, Lng: 72.9060, DemandScore: 5, TrafficIndex: 5, AvailableDrivers: 7},
			},
		},
		{
			Key:       "bangalore",
			Name:      "Bengaluru",
			BaseFare:  28,
			RatePerKm: 9,
			Zones: []domain.Zone{
				{Name: "Koramangala", Lat: 12.9352, Lng: 77.6245, DemandScore: 7, TrafficIndex: 8, AvailableDrivers: 10},
				{Name: "Indiranagar", Lat: 12.9719, Lng: 77.6412, DemandScore: 6, TrafficIndex: 7, AvailableDrivers: 9},
				{Name: "Whitefield", Lat: 12.9698, Lng: 77.7500, DemandScore: 5, TrafficIndex: 6, AvailableDrivers: 8},
				{Name: "Jayanagar", Lat: 12.9308, Lng: 77.5838, DemandScore: 4, TrafficIndex: 4, AvailableDrivers: 5},
			},
		},
		{
			Key:       "chennai",
			Name:      "Chennai",
			BaseFare:  25,
			RatePerKm: 8,
			Zones: []domain.Zone{
				{Name: "T Nagar", Lat: 13.0418, Lng: 80.2341, DemandScore: 7, TrafficIndex: 7, AvailableDrivers: 9},
				{Name: "Anna Nagar", Lat: 13.0850, Lng: 80.2101, DemandScore: 5, TrafficIndex: 5, AvailableDrivers: 7},
				{Name: "Adyar", Lat: 13.0012, Lng: 80.2565, DemandScore: 4, TrafficIndex: 4, AvailableDrivers: 6},
				{Name: "Velachery", Lat: 12.9815, Lng: 80.2180, DemandScore: 4, TrafficIndex: 5, AvailableDrivers: 5},
			},
		},
	}
}

// cityTokens maps each city key to the lowercase substrings that identify it
// in a free-text address.
func cityTokens() map[string][]string {
	return map[string][]string{
		"delhi":     {"delhi", "connaught", "hauz khas", "dwarka", "karol bagh", "saket"},
		"mumbai":    {"mumbai", "bandra", "andheri", "colaba", "powai"},
		"bangalore": {"bangalore", "bengaluru", "koramangala", "indiranagar", "whitefield"},
		"chennai":   {"chennai", "t nagar", "anna nagar", "adyar", "velachery"},
	}
}
