package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiptrack/shipment-tracker/internal/core/domain"
)

var animEpoch = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func snapshotAt(lat, lng float64, status domain.ShipmentStatus) Snapshot {
	return Snapshot{
		Code:     "SHPTEST01",
		Status:   status,
		Position: &domain.Coordinates{Lat: lat, Lng: lng},
		Dest:     &domain.Coordinates{Lat: 10, Lng: 10},
	}
}

func TestEaseOutQuad(t *testing.T) {
	assert.Equal(t, 0.0, easeOutQuad(0))
	assert.Equal(t, 1.0, easeOutQuad(1))
	assert.Equal(t, 0.75, easeOutQuad(0.5))
}

func TestAnimator_FirstFixPlacesMarkerDirectly(t *testing.T) {
	a := NewAnimator()
	a.Feed(snapshotAt(3, 4, domain.StatusInTransit), animEpoch)

	frame := a.FrameAt(animEpoch)
	assert.Equal(t, StateStopped, frame.State)
	assert.Equal(t, domain.Coordinates{Lat: 3, Lng: 4}, frame.Position)
	assert.Len(t, frame.Trail, 1)
}

func TestAnimator_TweensTowardNewPoint(t *testing.T) {
	a := NewAnimator()
	a.Feed(snapshotAt(0, 0, domain.StatusInTransit), animEpoch)
	a.Feed(snapshotAt(1, 1, domain.StatusInTransit), animEpoch)

	mid := a.FrameAt(animEpoch.Add(moveTween / 2))
	assert.Equal(t, StateMoving, mid.State)
	// easeOutQuad(0.5) == 0.75 of the way there.
	assert.InDelta(t, 0.75, mid.Position.Lat, 1e-9)
	assert.InDelta(t, 0.75, mid.Position.Lng, 1e-9)
	assert.Empty(t, mid.RemainingLeg, "no dashed leg while moving")

	done := a.FrameAt(animEpoch.Add(moveTween))
	assert.Equal(t, StateStopped, done.State)
	assert.Equal(t, domain.Coordinates{Lat: 1, Lng: 1}, done.Position)
}

func TestAnimator_RemainingLegWhenStopped(t *testing.T) {
	a := NewAnimator()
	a.Feed(snapshotAt(2, 2, domain.StatusInTransit), animEpoch)

	frame := a.FrameAt(animEpoch)
	require.Len(t, frame.RemainingLeg, 2)
	assert.Equal(t, domain.Coordinates{Lat: 2, Lng: 2}, frame.RemainingLeg[0])
	assert.Equal(t, domain.Coordinates{Lat: 10, Lng: 10}, frame.RemainingLeg[1])
}

func TestAnimator_TrailSuppressesDuplicatePoints(t *testing.T) {
	a := NewAnimator()
	a.Feed(snapshotAt(1, 1, domain.StatusInTransit), animEpoch)
	a.Feed(snapshotAt(1, 1+1e-9, domain.StatusInTransit), animEpoch.Add(time.Second))
	a.Feed(snapshotAt(2, 2, domain.StatusInTransit), animEpoch.Add(2*time.Second))

	frame := a.FrameAt(animEpoch.Add(10 * time.Second))
	assert.Len(t, frame.Trail, 2)
}

func TestAnimator_TerminalFreezesAtRenderedPosition(t *testing.T) {
	a := NewAnimator()
	a.Feed(snapshotAt(0, 0, domain.StatusInTransit), animEpoch)
	a.Feed(snapshotAt(1, 1, domain.StatusInTransit), animEpoch)

	// Freeze mid-tween; the marker must hold the interpolated position.
	freezeAt := animEpoch.Add(moveTween / 2)
	a.Feed(snapshotAt(1, 1, domain.StatusOnHold), freezeAt)
	require.True(t, a.Frozen())

	held := a.FrameAt(freezeAt.Add(time.Hour))
	assert.Equal(t, StateFrozen, held.State)
	assert.InDelta(t, 0.75, held.Position.Lat, 1e-9)

	// Later feeds are ignored once frozen.
	a.Feed(snapshotAt(9, 9, domain.StatusInTransit), freezeAt.Add(time.Hour))
	after := a.FrameAt(freezeAt.Add(2 * time.Hour))
	assert.Equal(t, StateFrozen, after.State)
	assert.InDelta(t, 0.75, after.Position.Lat, 1e-9)
}

func TestAnimator_NilPositionIgnored(t *testing.T) {
	a := NewAnimator()
	a.Feed(snapshotAt(5, 5, domain.StatusInTransit), animEpoch)
	a.Feed(Snapshot{Status: domain.StatusInTransit}, animEpoch.Add(time.Second))

	frame := a.FrameAt(animEpoch.Add(2 * time.Second))
	assert.Equal(t, domain.Coordinates{Lat: 5, Lng: 5}, frame.Position)
}
