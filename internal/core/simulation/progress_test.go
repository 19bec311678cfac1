package simulation

import (
	"testing"
	"time"

	"github.com/hiptrack/shipment-tracker/internal/core/domain"
)

var epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestComputeProgress_Bounds(t *testing.T) {
	if got := ComputeProgress(epoch, 10, epoch, 0); got != 0 {
		t.Errorf("progress at creation time = %v, want 0", got)
	}
	if got := ComputeProgress(epoch, 10, epoch.Add(10*time.Hour), 0); got != 1 {
		t.Errorf("progress at the estimate = %v, want 1", got)
	}
	if got := ComputeProgress(epoch, 10, epoch.Add(25*time.Hour), 0); got != 1 {
		t.Errorf("progress past the estimate = %v, want exactly 1", got)
	}
	if got := ComputeProgress(epoch, 10, epoch.Add(-time.Hour), 0); got != 0 {
		t.Errorf("progress before creation = %v, want 0", got)
	}
}

func TestComputeProgress_Midpoint(t *testing.T) {
	got := ComputeProgress(epoch, 10, epoch.Add(5*time.Hour), 0)
	if got != 0.5 {
		t.Errorf("progress at half the estimate = %v, want 0.5", got)
	}
}

func TestComputeProgress_MonotonicInNow(t *testing.T) {
	prev := -1.0
	for h := 0; h <= 20; h++ {
		got := ComputeProgress(epoch, 12, epoch.Add(time.Duration(h)*time.Hour), 0)
		if got < prev {
			t.Fatalf("progress decreased: %v after %v at hour %d", got, prev, h)
		}
		prev = got
	}
}

func TestComputeProgress_DisabledSimulation(t *testing.T) {
	for _, hours := range []float64{0, -3} {
		if got := ComputeProgress(epoch, hours, epoch.Add(100*time.Hour), 0.42); got != 0.42 {
			t.Errorf("estimatedHours=%v: got %v, want stored 0.42 unchanged", hours, got)
		}
	}
}

func TestComputeProgress_Idempotent(t *testing.T) {
	now := epoch.Add(3 * time.Hour)
	first := ComputeProgress(epoch, 10, now, 0)
	second := ComputeProgress(epoch, 10, now, first)
	if first != second {
		t.Errorf("same now produced %v then %v", first, second)
	}
}

func TestComputePosition_ExactEndpoints(t *testing.T) {
	origin := &domain.Coordinates{Lat: 48.8566, Lng: 2.3522}
	dest := &domain.Coordinates{Lat: 40.7128, Lng: -74.006}

	start, ok := ComputePosition(origin, dest, 0)
	if !ok || start != *origin {
		t.Errorf("fraction 0: got %+v ok=%v, want origin exactly", start, ok)
	}
	end, ok := ComputePosition(origin, dest, 1)
	if !ok || end != *dest {
		t.Errorf("fraction 1: got %+v ok=%v, want dest exactly", end, ok)
	}
}

func TestComputePosition_Midpoint(t *testing.T) {
	origin := &domain.Coordinates{Lat: 0, Lng: 0}
	dest := &domain.Coordinates{Lat: 10, Lng: 10}

	pos, ok := ComputePosition(origin, dest, 0.5)
	if !ok {
		t.Fatal("expected a position")
	}
	if pos.Lat != 5 || pos.Lng != 5 {
		t.Errorf("midpoint = %+v, want (5, 5)", pos)
	}
}

func TestComputePosition_MissingEndpointsFailSoft(t *testing.T) {
	dest := &domain.Coordinates{Lat: 10, Lng: 10}
	if _, ok := ComputePosition(nil, dest, 0.5); ok {
		t.Error("missing origin must not produce a position")
	}
	if _, ok := ComputePosition(dest, nil, 0.5); ok {
		t.Error("missing dest must not produce a position")
	}
}

func TestDistanceProgress(t *testing.T) {
	origin := &domain.Coordinates{Lat: 0, Lng: 0}
	dest := &domain.Coordinates{Lat: 0, Lng: 10}
	half := &domain.Coordinates{Lat: 0, Lng: 5}

	got := DistanceProgress(origin, dest, half, 0)
	if got < 0.49 || got > 0.51 {
		t.Errorf("halfway along the equator = %v, want ~0.5", got)
	}
	if got := DistanceProgress(origin, dest, nil, 0.7); got != 0.7 {
		t.Errorf("unknown current position: got %v, want fallback 0.7", got)
	}
	if got := DistanceProgress(origin, origin, origin, 0.3); got != 0 {
		t.Errorf("zero-length route: got %v, want 0", got)
	}
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	paris := domain.Coordinates{Lat: 48.8566, Lng: 2.3522}
	london := domain.Coordinates{Lat: 51.5074, Lng: -0.1278}
	got := HaversineKm(paris, london)
	if got < 330 || got > 360 {
		t.Errorf("Paris-London = %vkm, want roughly 344km", got)
	}
}
