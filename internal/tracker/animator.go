package tracker

import (
	"math"
	"time"

	"github.com/hiptrack/shipment-tracker/internal/core/domain"
)

const (
	// moveTween is how long the marker glides toward a new authoritative
	// point. Shorter than the poll interval so the marker settles between
	// updates instead of perpetually chasing.
	moveTween = 1800 * time.Millisecond

	// waypointEpsilon suppresses trail points that only differ by float
	// noise from the previous one.
	waypointEpsilon = 1e-6
)

// Frame is one rendered animation step.
type Frame struct {
	State    State
	Position domain.Coordinates
	// Trail is the traveled path, oldest first.
	Trail []domain.Coordinates
	// RemainingLeg is the current position followed by the destination,
	// rendered as a dashed segment. Empty while moving or when the
	// destination is unknown.
	RemainingLeg []domain.Coordinates
}

// Animator turns authoritative snapshots into smooth frames. It is pure with
// respect to time: Feed and FrameAt take explicit clocks, hold no goroutines,
// and are driven entirely by the caller's render loop.
type Animator struct {
	from, to    domain.Coordinates
	dest        *domain.Coordinates
	tweenStart  time.Time
	hasPosition bool
	frozen      bool
	trail       []domain.Coordinates
}

func NewAnimator() *Animator {
	return &Animator{}
}

// easeOutQuad starts fast and settles slowly, hiding the poll granularity.
func easeOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// Feed applies a new authoritative snapshot at time now. Terminal statuses
// freeze the marker at its currently rendered position; later feeds are
// ignored.
func (a *Animator) Feed(snap Snapshot, now time.Time) {
	if a.frozen {
		return
	}
	if snap.Dest != nil {
		a.dest = snap.Dest
	}

	if snap.Terminal() {
		a.freeze(now)
		return
	}
	if snap.Position == nil {
		return
	}
	target := *snap.Position

	if !a.hasPosition {
		// First fix: place the marker directly, no glide from (0,0).
		a.from, a.to = target, target
		a.hasPosition = true
		a.appendWaypoint(target)
		return
	}

	current := a.positionAt(now)
	if sameCoordinate(current, target) {
		a.from, a.to = target, target
		return
	}

	a.from, a.to = current, target
	a.tweenStart = now
	a.appendWaypoint(target)
}

// FrameAt renders the frame for time now.
func (a *Animator) FrameAt(now time.Time) Frame {
	pos := a.positionAt(now)

	state := StateStopped
	switch {
	case a.frozen:
		state = StateFrozen
	case !a.hasPosition:
		state = StatePolling
	case a.moving(now):
		state = StateMoving
	}

	frame := Frame{
		State:    state,
		Position: pos,
		Trail:    append([]domain.Coordinates(nil), a.trail...),
	}
	if state != StateMoving && a.dest != nil && a.hasPosition {
		frame.RemainingLeg = []domain.Coordinates{pos, *a.dest}
	}
	return frame
}

// Frozen reports whether a terminal status has been observed.
func (a *Animator) Frozen() bool {
	return a.frozen
}

func (a *Animator) freeze(now time.Time) {
	if a.hasPosition {
		pos := a.positionAt(now)
		a.from, a.to = pos, pos
	}
	a.frozen = true
}

func (a *Animator) moving(now time.Time) bool {
	if a.frozen || a.from == a.to {
		return false
	}
	return now.Sub(a.tweenStart) < moveTween
}

func (a *Animator) positionAt(now time.Time) domain.Coordinates {
	if a.from == a.to {
		return a.to
	}
	elapsed := now.Sub(a.tweenStart)
	if elapsed >= moveTween {
		return a.to
	}
	t := easeOutQuad(float64(elapsed) / float64(moveTween))
	return domain.Coordinates{
		Lat: a.from.Lat + t*(a.to.Lat-a.from.Lat),
		Lng: a.from.Lng + t*(a.to.Lng-a.from.Lng),
	}
}

func (a *Animator) appendWaypoint(p domain.Coordinates) {
	if n := len(a.trail); n > 0 && sameCoordinate(a.trail[n-1], p) {
		return
	}
	a.trail = append(a.trail, p)
}

func sameCoordinate(a, b domain.Coordinates) bool {
	return math.Abs(a.Lat-b.Lat) < waypointEpsilon && math.Abs(a.Lng-b.Lng) < waypointEpsilon
}
