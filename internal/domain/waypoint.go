package domain

// WaypointSource identifies which producer contributed a candidate stop.
type WaypointSource int

const (
	SourceRegisteredStation WaypointSource = iota
	SourceGeocodedSettlement
	SourceLandmark
)

func (s WaypointSource) String() string {
	switch s {
	case SourceRegisteredStation:
		return "station"
	case SourceGeocodedSettlement:
		return "settlement"
	case SourceLandmark:
		return "landmark"
	default:
		return "unknown"
	}
}

// CandidateWaypoint is a potential stop before deduplication and downsampling.
//
// DistanceAlongKm and DistanceFromRouteKm are meaningful only once Projected
// is true; unprojected candidates must never reach the final itinerary.
type CandidateWaypoint struct {
	ID                  string
	Name                string
	Location            Coordinates
	Source              WaypointSource
	DistanceAlongKm     float64
	DistanceFromRouteKm float64
	Projected           bool

	// Station is set only for SourceRegisteredStation and carries the
	// opaque registry attributes (price, slots, address) through the pipeline.
	Station *Station
}

// IsRegistered reports whether the candidate is a registered charging station.
func (c CandidateWaypoint) IsRegistered() bool {
	return c.Source == SourceRegisteredStation
}
