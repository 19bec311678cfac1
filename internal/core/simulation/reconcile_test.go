package simulation

import (
	"testing"
	"time"

	"github.com/hiptrack/shipment-tracker/internal/core/domain"
)

func transitShipment(estimatedHours float64) *domain.Shipment {
	origin := domain.Coordinates{Lat: 0, Lng: 0}
	dest := domain.Coordinates{Lat: 10, Lng: 10}
	return &domain.Shipment{
		ID:             "sh_1",
		Code:           "SHPABC123",
		Origin:         &origin,
		Current:        &origin,
		Dest:           &dest,
		EstimatedHours: estimatedHours,
		Progress:       0,
		Status:         domain.StatusInTransit,
		CreatedAt:      epoch,
	}
}

// applied simulates the write-behind having landed: the reconciled view is
// fed back as the new stored record.
func applied(s *domain.Shipment, rec Reconciliation) *domain.Shipment {
	out := *s
	out.Status = rec.Status
	out.Progress = rec.Progress
	out.Current = rec.Position
	return &out
}

func TestReconcile_HalfwayInTransit(t *testing.T) {
	s := transitShipment(10)
	rec := Reconcile(s, epoch.Add(5*time.Hour))

	if rec.Status != domain.StatusInTransit {
		t.Errorf("status = %q, want In Transit", rec.Status)
	}
	if rec.Progress != 0.5 {
		t.Errorf("progress = %v, want 0.5", rec.Progress)
	}
	if rec.Position == nil || rec.Position.Lat != 5 || rec.Position.Lng != 5 {
		t.Errorf("position = %+v, want (5, 5)", rec.Position)
	}
	if !rec.ShouldPersist {
		t.Error("drift from the stored record must request persistence")
	}
}

func TestReconcile_PastEstimateDelivers(t *testing.T) {
	s := transitShipment(10)
	rec := Reconcile(s, epoch.Add(11*time.Hour))

	if rec.Status != domain.StatusDelivered {
		t.Errorf("status = %q, want Delivered", rec.Status)
	}
	if rec.Progress != 1 {
		t.Errorf("progress = %v, want exactly 1", rec.Progress)
	}
	if rec.Position == nil || *rec.Position != *s.Dest {
		t.Errorf("position = %+v, want dest exactly", rec.Position)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	s := transitShipment(10)
	now := epoch.Add(5 * time.Hour)

	first := Reconcile(s, now)
	second := Reconcile(applied(s, first), now)

	if second.Status != first.Status || second.Progress != first.Progress {
		t.Errorf("second pass diverged: %+v vs %+v", second, first)
	}
	if second.ShouldPersist {
		t.Error("second pass over persisted state must not request another write")
	}
}

func TestReconcile_StickyStatusesFreezeEverything(t *testing.T) {
	for _, status := range []domain.ShipmentStatus{domain.StatusOnHold, domain.StatusCancelled, domain.StatusDelivered} {
		s := transitShipment(10)
		s.Status = status
		s.Progress = 0.3
		s.Current = &domain.Coordinates{Lat: 3, Lng: 3}

		rec := Reconcile(s, epoch.Add(8*time.Hour))

		if rec.Status != status {
			t.Errorf("%s: status overridden to %q", status, rec.Status)
		}
		if rec.Progress != 0.3 {
			t.Errorf("%s: progress changed to %v", status, rec.Progress)
		}
		if rec.Position == nil || rec.Position.Lat != 3 {
			t.Errorf("%s: position moved to %+v", status, rec.Position)
		}
		if rec.ShouldPersist {
			t.Errorf("%s: sticky status must not persist", status)
		}
	}
}

func TestReconcile_HoldFreezesAcrossReads(t *testing.T) {
	// An administrator places the shipment on hold three hours in; reads five
	// hours later must still report the held status and the frozen position.
	s := transitShipment(10)
	held := applied(s, Reconcile(s, epoch.Add(3*time.Hour)))
	held.Status = domain.StatusOnHold

	rec := Reconcile(held, epoch.Add(8*time.Hour))
	if rec.Status != domain.StatusOnHold {
		t.Errorf("status = %q, want On Hold", rec.Status)
	}
	if rec.Position == nil || *rec.Position != *held.Current {
		t.Errorf("position = %+v, want frozen at %+v", rec.Position, held.Current)
	}
}

func TestReconcile_MissingCoordinatesKeepStoredPosition(t *testing.T) {
	s := transitShipment(10)
	s.Origin = nil
	stored := &domain.Coordinates{Lat: 1, Lng: 2}
	s.Current = stored

	rec := Reconcile(s, epoch.Add(5*time.Hour))
	if rec.Position != stored {
		t.Errorf("position = %+v, want the stored coordinates untouched", rec.Position)
	}
	if rec.Status != domain.StatusInTransit {
		t.Errorf("status = %q, want In Transit", rec.Status)
	}
}

func TestReconcile_DisabledSimulationKeepsProgress(t *testing.T) {
	s := transitShipment(0)
	s.Progress = 0.25
	s.Current = &domain.Coordinates{Lat: 2.5, Lng: 2.5}

	rec := Reconcile(s, epoch.Add(50*time.Hour))
	if rec.Progress != 0.25 {
		t.Errorf("progress = %v, want stored 0.25", rec.Progress)
	}
	if rec.Status != domain.StatusInTransit {
		t.Errorf("status = %q, want In Transit", rec.Status)
	}
}
