// Package simulation derives a shipment's progress, position, and status
// purely from timestamps and the stored origin/destination coordinates.
// There is no live GPS feed: motion is simulated from elapsed wall-clock
// time against the planned transit duration. All functions are pure and
// never error for valid numeric inputs.
package simulation

import (
	"time"

	"github.com/hiptrack/shipment-tracker/internal/core/domain"
)

// ComputeProgress maps elapsed time to a transit fraction in [0, 1].
// When estimatedHours <= 0 the simulation is disabled for the record and
// the previously stored progress is returned unchanged. For a fixed
// createdAt/estimatedHours pair the result is monotonic in now.
func ComputeProgress(createdAt time.Time, estimatedHours float64, now time.Time, stored float64) float64 {
	if estimatedHours <= 0 {
		return stored
	}
	elapsed := now.Sub(createdAt).Hours()
	fraction := elapsed / estimatedHours
	if fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}
	return fraction
}

// ComputePosition linearly interpolates between origin and dest on each
// axis independently. This is not great-circle interpolation; the
// approximation is acceptable for marker placement on the tracking map.
//
// The boolean is false when either endpoint is unknown: callers must treat
// that as "position unknown" and keep the stored coordinates rather than
// rendering movement.
func ComputePosition(origin, dest *domain.Coordinates, fraction float64) (domain.Coordinates, bool) {
	if origin == nil || dest == nil {
		return domain.Coordinates{}, false
	}
	// Exact endpoints: a + f*(b-a) does not reproduce b bit-for-bit under
	// floating point, and the tracking view promises origin at 0 and dest
	// at 1 exactly.
	if fraction <= 0 {
		return *origin, true
	}
	if fraction >= 1 {
		return *dest, true
	}
	return domain.Coordinates{
		Lat: origin.Lat + fraction*(dest.Lat-origin.Lat),
		Lng: origin.Lng + fraction*(dest.Lng-origin.Lng),
	}, true
}
