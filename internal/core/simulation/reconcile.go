package simulation

import (
	"time"

	"github.com/hiptrack/shipment-tracker/internal/core/domain"
)

// Reconciliation is the authoritative view derived from a stored shipment
// at a point in time. Position is nil when it cannot be computed and the
// stored value was also unknown. ShouldPersist is true when the derived
// view differs from the stored record and the store needs a refresh.
type Reconciliation struct {
	Status        domain.ShipmentStatus
	Progress      float64
	Position      *domain.Coordinates
	ShouldPersist bool
}

// Reconcile decides the authoritative status, progress, and position for a
// stored shipment at time now.
//
// Sticky statuses (On Hold, Cancelled, Delivered) pass through entirely:
// the stored status, progress, and position are returned unchanged and
// nothing is persisted. This guard is what makes repeated reconciliation
// of a terminal shipment an idempotent no-op.
//
// Otherwise status is derived from the time-based fraction: Delivered at
// fraction >= 1, In Transit below. Change detection is exact: any numeric
// delta counts as a change.
func Reconcile(stored *domain.Shipment, now time.Time) Reconciliation {
	if stored.Status.Sticky() {
		return Reconciliation{
			Status:   stored.Status,
			Progress: stored.Progress,
			Position: stored.Current,
		}
	}

	fraction := ComputeProgress(stored.CreatedAt, stored.EstimatedHours, now, stored.Progress)

	status := domain.StatusInTransit
	if fraction >= 1 {
		status = domain.StatusDelivered
	}

	position := stored.Current
	if pos, ok := ComputePosition(stored.Origin, stored.Dest, fraction); ok {
		position = &pos
	}

	return Reconciliation{
		Status:        status,
		Progress:      fraction,
		Position:      position,
		ShouldPersist: fraction != stored.Progress || status != stored.Status || !sameCoordinates(position, stored.Current),
	}
}

func sameCoordinates(a, b *domain.Coordinates) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Lat == b.Lat && a.Lng == b.Lng
}
