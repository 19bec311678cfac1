package domain

import (
	"errors"
	"time"
)

// ShipmentStatus is the lifecycle state of a shipment. The set is closed:
// any other value is rejected at the API boundary.
type ShipmentStatus string

const (
	StatusOnHold    ShipmentStatus = "On Hold"
	StatusInTransit ShipmentStatus = "In Transit"
	StatusDelivered ShipmentStatus = "Delivered"
	StatusCancelled ShipmentStatus = "Cancelled"
)

var ErrShipmentNotFound = errors.New("shipment not found")
var ErrInvalidStatus = errors.New("invalid shipment status")
var ErrMissingCoordinates = errors.New("shipment is missing coordinates")
var ErrEmptyPatch = errors.New("no fields to update")

// Valid reports whether s belongs to the closed status set.
func (s ShipmentStatus) Valid() bool {
	switch s {
	case StatusOnHold, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Sticky reports whether a stored status must never be overridden by the
// progress simulator. A stored Delivered is sticky regardless of whether an
// administrator or the simulator wrote it; the simulator only ever converges
// on the same value, so no provenance flag is kept.
func (s ShipmentStatus) Sticky() bool {
	switch s {
	case StatusOnHold, StatusCancelled, StatusDelivered:
		return true
	}
	return false
}

// Coordinates is a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Party holds shipper or receiver contact details.
type Party struct {
	Name    string `json:"name" bson:"name"`
	Address string `json:"address" bson:"address"`
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty"`
	Email   string `json:"email,omitempty" bson:"email,omitempty"`
}

// Product is a single cargo line item. All numeric fields are independently
// defaultable; none may be negative.
type Product struct {
	PieceType   string  `json:"piece_type" bson:"piece_type"`
	Description string  `json:"description" bson:"description"`
	Qty         int     `json:"qty" bson:"qty"`
	LengthCm    float64 `json:"length_cm" bson:"length_cm"`
	WidthCm     float64 `json:"width_cm" bson:"width_cm"`
	HeightCm    float64 `json:"height_cm" bson:"height_cm"`
	WeightKg    float64 `json:"weight_kg" bson:"weight_kg"`
}

// Normalize applies the defaulting rules for a cargo line item: a missing
// quantity becomes 1 and negative measurements are clamped to zero.
func (p Product) Normalize() Product {
	if p.Qty < 1 {
		p.Qty = 1
	}
	if p.LengthCm < 0 {
		p.LengthCm = 0
	}
	if p.WidthCm < 0 {
		p.WidthCm = 0
	}
	if p.HeightCm < 0 {
		p.HeightCm = 0
	}
	if p.WeightKg < 0 {
		p.WeightKg = 0
	}
	return p
}

// Shipment is the central aggregate. Origin and Dest are fixed at creation;
// Current is the last known or derived position. Estimated hours <= 0
// disables the progress simulation for the record.
type Shipment struct {
	ID   string `json:"id" bson:"_id,omitempty"`
	Code string `json:"code" bson:"code"`
	Name string `json:"name" bson:"name"`

	Origin  *Coordinates `json:"origin,omitempty" bson:"origin,omitempty"`
	Current *Coordinates `json:"current,omitempty" bson:"current,omitempty"`
	Dest    *Coordinates `json:"dest,omitempty" bson:"dest,omitempty"`

	EstimatedHours float64        `json:"estimated_hours" bson:"estimated_hours"`
	Progress       float64        `json:"progress" bson:"progress"`
	Status         ShipmentStatus `json:"status" bson:"status"`

	Products []Product `json:"products" bson:"products"`

	Shipper  Party `json:"shipper" bson:"shipper"`
	Receiver Party `json:"receiver" bson:"receiver"`

	Agency       string `json:"agency,omitempty" bson:"agency,omitempty"`
	ShipmentType string `json:"shipment_type" bson:"shipment_type"`
	ShipmentMode string `json:"shipment_mode" bson:"shipment_mode"`
	PaymentMode  string `json:"payment_mode" bson:"payment_mode"`
	CarrierRef   string `json:"carrier_ref" bson:"carrier_ref"`
	Location     string `json:"location,omitempty" bson:"location,omitempty"`
	AdminComment string `json:"admin_comment,omitempty" bson:"admin_comment,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
