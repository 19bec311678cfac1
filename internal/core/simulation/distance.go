package simulation

import (
	"math"

	"github.com/hiptrack/shipment-tracker/internal/core/domain"
)

const earthRadiusKm = 6371

// HaversineKm returns the great-circle distance between two points in
// kilometres.
func HaversineKm(a, b domain.Coordinates) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180
	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*math.Pow(math.Sin(dLng/2), 2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// DistanceProgress is the display-only cross-check of transit completion:
// distance travelled from origin over the total route distance, clamped to
// [0, 1]. Time-based progress remains the source of truth; this value is
// only shown alongside it. Returns fallback when any coordinate is unknown
// or the route has zero length.
func DistanceProgress(origin, dest, current *domain.Coordinates, fallback float64) float64 {
	if origin == nil || dest == nil || current == nil {
		return fallback
	}
	total := HaversineKm(*origin, *dest)
	if total <= 0 {
		return 0
	}
	p := HaversineKm(*origin, *current) / total
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
