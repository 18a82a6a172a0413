package domain

// Zone is a named, geocoded sub-area of a city. It doubles as a pricing
// distance anchor and a demand-heatmap cell. DemandScore and TrafficIndex
// are seed values; live values drift in an external simulator and are read
// through the conditions store.
type Zone struct {
	Name             string
	Lat              float64
	Lng              float64
	DemandScore      float64 // 0-10
	TrafficIndex     float64 // 0-10
	AvailableDrivers int
}

// City holds the immutable per-city rate card and zone list, loaded once at
// process start.
type City struct {
	Key       string
	Name      string
	BaseFare  float64 // currency units
	RatePerKm float64 // currency per km
	Zones     []Zone
}
