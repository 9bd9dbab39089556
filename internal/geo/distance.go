// Package geo holds the proximity math used to decide whether a user may start
// a bathing session at an onsen.
package geo

import (
	"math"

	"github.com/osse101/onsenkatsu/internal/domain"
)

// Distance returns the great-circle distance in meters between two points
// using the haversine formula.
func Distance(a, b domain.Point) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	// Guard against rounding pushing h past 1 for antipodal points
	h = math.Min(1, math.Max(0, h))

	return domain.EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// WithinRange reports whether b lies within maxMeters of a (inclusive).
func WithinRange(a, b domain.Point, maxMeters float64) bool {
	return Distance(a, b) <= maxMeters
}

// Nearest returns the index of the closest candidate to origin and its distance.
// It returns -1 and +Inf when candidates is empty.
func Nearest(origin domain.Point, candidates []domain.Point) (int, float64) {
	best := -1
	bestDist := math.Inf(1)
	for i, c := range candidates {
		if d := Distance(origin, c); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, bestDist
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
