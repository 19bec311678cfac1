package ports

import (
	"context"
	"time"

	"github.com/hiptrack/shipment-tracker/internal/core/domain"
)

// ShipmentPatch is a partial update. Nil fields are left untouched.
// ClearAdminComment distinguishes "blank out the comment" from "no change",
// mirroring the nullable column in the store.
type ShipmentPatch struct {
	Name           *string
	Agency         *string
	Status         *domain.ShipmentStatus
	ShipmentType   *string
	ShipmentMode   *string
	PaymentMode    *string
	CarrierRef     *string
	Location       *string
	Current        *domain.Coordinates
	Dest           *domain.Coordinates
	EstimatedHours *float64
	Progress       *float64
	AdminComment   *string
	ClearAdminComment bool
	Products       *[]domain.Product
	UpdatedAt      time.Time
}

// ShipmentRepository is the generic record store the core consumes. The
// implementation decides how cargo lists and coordinates are encoded;
// malformed stored cargo must decode to an empty list, never an error.
type ShipmentRepository interface {
	Insert(ctx context.Context, s *domain.Shipment) error
	// FindByCode looks a shipment up by its human-shareable code,
	// case-insensitively.
	FindByCode(ctx context.Context, code string) (*domain.Shipment, error)
	// UpdateByID applies a partial update keyed by the immutable internal
	// id, never by code, and returns the updated record.
	UpdateByID(ctx context.Context, id string, patch ShipmentPatch) (*domain.Shipment, error)
	// ListAll returns every shipment ordered by creation time, newest first.
	ListAll(ctx context.Context) ([]*domain.Shipment, error)
}
