package geo

import "math"

const earthRadiusMeters = 6_371_000.0

// degToMeters converts degree-scaled equirectangular distances to meters.
const degToMeters = math.Pi / 180 * earthRadiusMeters

// Haversine returns the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// PointToSegmentRatio projects point P onto segment AB in a local planar
// approximation and returns the projection ratio along AB, clamped to [0,1].
//
// Lat/lon deltas are treated as flat-plane deltas with a cos(lat) correction
// on longitude. Good enough for corridor widths well under 100 km; the final
// point-to-point distance should still be computed geodesically.
func PointToSegmentRatio(pLat, pLon, aLat, aLon, bLat, bLon float64) float64 {
	if aLat == bLat && aLon == bLon {
		return 0
	}

	cosLat := math.Cos((aLat + bLat) / 2 * math.Pi / 180)

	ax := aLon * cosLat
	ay := aLat
	bx := bLon * cosLat
	by := bLat
	px := pLon * cosLat
	py := pLat

	dx := bx - ax
	dy := by - ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return 0
	}

	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t
}
