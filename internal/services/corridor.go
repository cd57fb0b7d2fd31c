package services

import (
	"log"

	"github.com/tidwall/rtree"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/geo"
)

// 1 degree of latitude is close to 111 km; the same factor is applied to
// longitude, which overshoots away from the equator but only widens the
// pre-filter box.
const kmPerDegree = 111.0

// Registered station that survived the loose corridor test, with its
// projection onto the route.
type projectedStation struct {
	station     *domain.Station
	alongKm     float64
	fromRouteKm float64
}

// stationsNearCorridor runs the first two corridor phases over the registry
// snapshot: an rtree bounding-box pre-filter inflated by the configured
// buffer, then a path-proximity test against the loose tolerance. The strict
// itinerary-eligibility test is applied later, at aggregation time.
func stationsNearCorridor(path *geo.Path, stations []*domain.Station, cfg PlannerConfig) []projectedStation {
	if len(stations) == 0 {
		return nil
	}

	var index rtree.RTreeG[*domain.Station]
	for _, s := range stations {
		if !s.Location.Valid() {
			log.Printf("station skipped: id=%s invalid coordinates", s.StationID)
			continue
		}
		p := [2]float64{s.Location.Lon, s.Location.Lat}
		index.Insert(p, p, s)
	}

	minLat, minLon, maxLat, maxLon := path.Bounds()
	buffer := cfg.BBoxBufferKm / kmPerDegree

	var boxed []*domain.Station
	index.Search(
		[2]float64{minLon - buffer, minLat - buffer},
		[2]float64{maxLon + buffer, maxLat + buffer},
		func(_, _ [2]float64, s *domain.Station) bool {
			boxed = append(boxed, s)
			return true
		},
	)

	near := make([]projectedStation, 0, len(boxed))
	for _, s := range boxed {
		idx, perpMeters := path.Project(s.Location)
		fromRouteKm := perpMeters / 1000
		if fromRouteKm > cfg.LooseCorridorKm {
			continue
		}

		near = append(near, projectedStation{
			station:     s,
			alongKm:     path.CumulativeMeters(idx) / 1000,
			fromRouteKm: fromRouteKm,
		})
	}

	return near
}
