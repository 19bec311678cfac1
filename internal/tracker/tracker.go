// Package tracker drives a live tracking view on top of the read endpoint:
// a cancellable polling loop producing authoritative snapshots, and a pure
// time-based animator that smooths the coarse polling granularity into
// renderable frames. It is server-agnostic and carries no HTTP details; a
// websocket bridge or a native UI feeds it a Fetcher and consumes frames.
package tracker

import (
	"context"
	"time"

	"github.com/hiptrack/shipment-tracker/internal/core/domain"
)

// State is the renderer's lifecycle position.
type State int

const (
	StateIdle State = iota
	StatePolling
	StateMoving
	StateStopped
	StateFrozen
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePolling:
		return "polling"
	case StateMoving:
		return "moving"
	case StateStopped:
		return "stopped"
	case StateFrozen:
		return "frozen"
	}
	return "unknown"
}

// Snapshot is one authoritative tracking view as returned by the server.
type Snapshot struct {
	Code     string
	Status   domain.ShipmentStatus
	Position *domain.Coordinates
	Dest     *domain.Coordinates
	Progress float64
	At       time.Time
}

// Terminal reports whether the snapshot ends the polling loop.
func (s Snapshot) Terminal() bool {
	return s.Status.Sticky()
}

// Fetcher retrieves the current tracking view for a code.
type Fetcher interface {
	FetchTracking(ctx context.Context, code string) (Snapshot, error)
}
