package geo

import (
	"errors"
	"math"

	"ev-route-service/internal/domain"
)

// Path is a decoded route geometry with a cumulative-distance table.
//
// cum[0] = 0 and cum[i] = cum[i-1] + haversine(points[i-1], points[i]);
// the last entry is the total route length. A Path is built once per
// planning run and read-only thereafter.
type Path struct {
	points []domain.Coordinates
	cum    []float64 // meters from the first vertex
}

// Sample point taken along a path at a known distance from the start.
type PathSample struct {
	Location    domain.Coordinates
	AlongMeters float64
	Index       int // sample order, drives deterministic fallback naming
}

// NewPath builds the cumulative-distance table over the given polyline.
func NewPath(points []domain.Coordinates) (*Path, error) {
	if len(points) < 2 {
		return nil, errors.New("path must have at least 2 points")
	}

	cum := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		cum[i] = cum[i-1] + Haversine(prev.Lat, prev.Lon, cur.Lat, cur.Lon)
	}

	return &Path{points: points, cum: cum}, nil
}

// Points returns the path's vertices. Callers must not mutate the slice.
func (p *Path) Points() []domain.Coordinates { return p.points }

// CumulativeMeters returns the distance from the start to vertex i.
func (p *Path) CumulativeMeters(i int) float64 { return p.cum[i] }

// TotalMeters returns the total route length.
func (p *Path) TotalMeters() float64 { return p.cum[len(p.cum)-1] }

// TotalKm returns the total route length in kilometers.
func (p *Path) TotalKm() float64 { return p.TotalMeters() / 1000 }

// Project finds the path location closest to c.
//
// For every segment the query point is projected in a local planar
// approximation, then the distance to the interpolated closest point is
// computed geodesically. Returns the index of the nearest vertex and the
// perpendicular distance in meters.
func (p *Path) Project(c domain.Coordinates) (closestIdx int, perpMeters float64) {
	perpMeters = math.Inf(1)

	for i := 0; i < len(p.points)-1; i++ {
		a, b := p.points[i], p.points[i+1]

		t := PointToSegmentRatio(c.Lat, c.Lon, a.Lat, a.Lon, b.Lat, b.Lon)
		lat := a.Lat + t*(b.Lat-a.Lat)
		lon := a.Lon + t*(b.Lon-a.Lon)

		d := Haversine(c.Lat, c.Lon, lat, lon)
		if d < perpMeters {
			perpMeters = d
			if t < 0.5 {
				closestIdx = i
			} else {
				closestIdx = i + 1
			}
		}
	}

	return closestIdx, perpMeters
}

// Bounds returns the path's bounding box.
func (p *Path) Bounds() (minLat, minLon, maxLat, maxLon float64) {
	minLat, minLon = math.Inf(1), math.Inf(1)
	maxLat, maxLon = math.Inf(-1), math.Inf(-1)

	for _, pt := range p.points {
		minLat = math.Min(minLat, pt.Lat)
		minLon = math.Min(minLon, pt.Lon)
		maxLat = math.Max(maxLat, pt.Lat)
		maxLon = math.Max(maxLon, pt.Lon)
	}
	return minLat, minLon, maxLat, maxLon
}

// SampleEvery returns points spaced intervalMeters apart along the path,
// starting one interval in from the origin, capped at max samples.
// Sample coordinates are linearly interpolated within the containing segment.
func (p *Path) SampleEvery(intervalMeters float64, max int) []PathSample {
	if intervalMeters <= 0 || max <= 0 {
		return nil
	}

	total := p.TotalMeters()
	samples := make([]PathSample, 0, max)
	seg := 0

	for n := 1; n <= max; n++ {
		target := float64(n) * intervalMeters
		if target >= total {
			break
		}

		for seg < len(p.cum)-1 && p.cum[seg+1] < target {
			seg++
		}

		a, b := p.points[seg], p.points[seg+1]
		segLen := p.cum[seg+1] - p.cum[seg]
		t := 0.0
		if segLen > 0 {
			t = (target - p.cum[seg]) / segLen
		}

		samples = append(samples, PathSample{
			Location: domain.Coordinates{
				Lat: a.Lat + t*(b.Lat-a.Lat),
				Lon: a.Lon + t*(b.Lon-a.Lon),
			},
			AlongMeters: target,
			Index:       n - 1,
		})
	}

	return samples
}
