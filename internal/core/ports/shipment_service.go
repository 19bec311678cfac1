package ports

import (
	"context"
	"time"

	"github.com/hiptrack/shipment-tracker/internal/core/domain"
)

// CreateShipmentInput carries everything needed to register a shipment.
// Code and CarrierRef are generated when absent; origin doubles as the
// initial current position when no current coordinates are given.
type CreateShipmentInput struct {
	Name   string
	Agency string

	Shipper  PartyInput
	Receiver PartyInput

	Origin  *CoordinatesInput
	Current *CoordinatesInput
	Dest    *CoordinatesInput

	EstimatedHours float64
	Status         string

	Products []ProductInput

	ShipmentType string
	ShipmentMode string
	PaymentMode  string
	CarrierRef   string
	Location     string
	AdminComment string
}

// PartyInput holds shipper or receiver contact details.
type PartyInput struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// CoordinatesInput holds a geographic point.
type CoordinatesInput struct {
	Lat float64
	Lng float64
}

// ProductInput holds one cargo line item before normalization.
type ProductInput struct {
	PieceType   string
	Description string
	Qty         int
	LengthCm    float64
	WidthCm     float64
	HeightCm    float64
	WeightKg    float64
}

// CreateShipmentResult is returned after a successful creation.
type CreateShipmentResult struct {
	Code        string
	CarrierRef  string
	Origin      *domain.Coordinates
	Current     *domain.Coordinates
	Destination *domain.Coordinates
}

// PatchShipmentInput is the administrative allow-list. Identity and timing
// fields (id, code, created_at) are immutable through this path.
type PatchShipmentInput struct {
	Name           *string
	Agency         *string
	Status         *string
	ShipmentType   *string
	ShipmentMode   *string
	PaymentMode    *string
	CarrierRef     *string
	Location       *string
	CurrentLat     *float64
	CurrentLng     *float64
	DestLat        *float64
	DestLng        *float64
	EstimatedHours *float64
	Products       []ProductInput
	HasProducts    bool
}

// HistoryEntry is one synthesized tracking-log row, newest first.
type HistoryEntry struct {
	Timestamp time.Time
	Location  string
	Status    string
	Remarks   string
}

// ShipmentService defines the staff-facing shipment operations.
type ShipmentService interface {
	Create(ctx context.Context, input CreateShipmentInput) (*CreateShipmentResult, error)
	Patch(ctx context.Context, code string, input PatchShipmentInput) (*domain.Shipment, error)
	List(ctx context.Context) ([]*domain.Shipment, error)
	// UpdateLocation manually overrides the current position.
	UpdateLocation(ctx context.Context, code string, lat, lng float64) error
	// History synthesizes a human-readable event log from the single
	// shipment record.
	History(ctx context.Context, code string) ([]HistoryEntry, error)
}
