package domain

// Registered charging station as reported by the station registry.
// A Station is a read-only snapshot: availability is volatile, so instances
// must never be cached across planning runs.
type Station struct {
	StationID      string
	Name           string
	Location       Coordinates
	Address        string
	PricePerHour   float64
	AvailableSlots int
	TotalPorts     int
	Status         string
	Amenities      []string
}

// Named coordinate that is force-included as a stop candidate when it lies
// close enough to the route. Landmarks are configuration data, not engine
// knowledge; they are loaded from a seed file at startup.
type Landmark struct {
	Name     string
	Location Coordinates
}
