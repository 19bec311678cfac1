package ports

import (
	"context"
	"time"

	"github.com/hiptrack/shipment-tracker/internal/core/domain"
)

// TrackingView is the customer-facing projection returned on every tracking
// read: the stored shipper/receiver/cargo data combined with the freshly
// reconciled progress, position, and status.
type TrackingView struct {
	Shipment domain.Shipment
	// DistanceProgress is the display-only great-circle cross-check of the
	// time-based progress already applied to Shipment.Progress.
	DistanceProgress float64
	// ArrivalAt is CreatedAt + EstimatedHours; zero when simulation is
	// disabled for the record.
	ArrivalAt time.Time
}

// TrackingPatchInput is the narrow mutation surface exposed on the tracking
// endpoint. Nil fields are not touched.
type TrackingPatchInput struct {
	Status       *string
	CurrentLat   *float64
	CurrentLng   *float64
	Progress     *float64
	AdminComment *string
}

// SimulationResult reports the outcome of a forced reconciliation pass.
type SimulationResult struct {
	Code      string
	Performed bool
	// Message explains why nothing happened when Performed is false.
	Message  string
	Progress float64
	Position domain.Coordinates
	Status   domain.ShipmentStatus
}

// TrackingService is the read-reconcile-write surface of the system.
type TrackingService interface {
	// GetTracking recomputes progress/position/status for the shipment and
	// schedules a background write when the stored record has drifted. The
	// returned view never waits on that write.
	GetTracking(ctx context.Context, code string) (*TrackingView, error)
	// PatchTracking applies a narrow manual override (status, position,
	// progress, admin comment). A changed admin comment triggers the
	// best-effort receiver notification.
	PatchTracking(ctx context.Context, code string, input TrackingPatchInput) (*domain.Shipment, error)
	// SimulateMovement forces one reconciliation pass outside of a read and
	// persists it synchronously. No-op for shipments not In Transit.
	SimulateMovement(ctx context.Context, code string) (*SimulationResult, error)
}

// ProgressUpdate is one write-behind entry: the reconciled values to flush
// to the record store after a read already returned them.
type ProgressUpdate struct {
	ID       string
	Code     string
	Status   domain.ShipmentStatus
	Progress float64
	Position *domain.Coordinates
	At       time.Time
}

// ProgressWriter accepts write-behind entries. Enqueue must not block the
// read path; failures are observable through logs and metrics only.
type ProgressWriter interface {
	Enqueue(update ProgressUpdate)
}

// Notifier delivers the admin-comment notification to the receiver.
// Best-effort: callers log failures and move on.
type Notifier interface {
	NotifyAdminComment(ctx context.Context, toEmail, code, comment string) error
}

// NotificationDedup suppresses repeat notifications for an identical
// comment on the same shipment.
type NotificationDedup interface {
	AlreadySent(ctx context.Context, code, comment string) (bool, error)
	MarkSent(ctx context.Context, code, comment string) error
}
