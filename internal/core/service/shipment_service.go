package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"

	"github.com/hiptrack/shipment-tracker/internal/api/metrics"
	"github.com/hiptrack/shipment-tracker/internal/core/domain"
	"github.com/hiptrack/shipment-tracker/internal/core/ports"
)

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ShipmentService implements the staff-facing shipment operations.
type ShipmentService struct {
	repo   ports.ShipmentRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewShipmentService(repo ports.ShipmentRepository, logger zerolog.Logger) *ShipmentService {
	return &ShipmentService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create registers a new shipment. The tracking code and carrier reference
// are generated when absent, the current position starts at the origin, and
// progress starts at zero.
func (s *ShipmentService) Create(ctx context.Context, input ports.CreateShipmentInput) (*ports.CreateShipmentResult, error) {
	status := domain.StatusInTransit
	if input.Status != "" {
		status = domain.ShipmentStatus(input.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("create shipment: %w: %q", domain.ErrInvalidStatus, input.Status)
		}
	}

	now := s.now()
	origin := toCoordinates(input.Origin)
	current := toCoordinates(input.Current)
	if current == nil {
		current = origin
	}

	carrierRef := input.CarrierRef
	if carrierRef == "" {
		carrierRef = generateCarrierRef()
	}

	shipment := &domain.Shipment{
		Code:           generateCode(),
		Name:           input.Name,
		Agency:         input.Agency,
		Origin:         origin,
		Current:        current,
		Dest:           toCoordinates(input.Dest),
		EstimatedHours: input.EstimatedHours,
		Progress:       0,
		Status:         status,
		Products:       normalizeProducts(input.Products),
		Shipper: domain.Party{
			Name:    input.Shipper.Name,
			Address: input.Shipper.Address,
			Phone:   input.Shipper.Phone,
		},
		Receiver: domain.Party{
			Name:    input.Receiver.Name,
			Address: input.Receiver.Address,
			Phone:   input.Receiver.Phone,
			Email:   input.Receiver.Email,
		},
		ShipmentType: defaultString(input.ShipmentType, "Truckload"),
		ShipmentMode: defaultString(input.ShipmentMode, "Land Shipping"),
		PaymentMode:  defaultString(input.PaymentMode, "CASH"),
		CarrierRef:   carrierRef,
		Location:     input.Location,
		AdminComment: input.AdminComment,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, shipment); err != nil {
		s.logger.Error().Err(err).Msg("failed to create shipment")
		return nil, fmt.Errorf("create shipment: %w", err)
	}

	metrics.ShipmentsCreatedTotal.WithLabelValues(shipment.ShipmentMode).Inc()
	s.logger.Info().
		Str("code", shipment.Code).
		Str("carrier_ref", shipment.CarrierRef).
		Msg("shipment created")

	return &ports.CreateShipmentResult{
		Code:        shipment.Code,
		CarrierRef:  shipment.CarrierRef,
		Origin:      shipment.Origin,
		Current:     shipment.Current,
		Destination: shipment.Dest,
	}, nil
}

// Patch applies the administrative allow-list to a shipment. The update is
// keyed by the internal id; identity and timing fields are untouchable
// through this path.
func (s *ShipmentService) Patch(ctx context.Context, code string, input ports.PatchShipmentInput) (*domain.Shipment, error) {
	shipment, err := s.repo.FindByCode(ctx, normalizeCode(code))
	if err != nil {
		return nil, fmt.Errorf("patch shipment: %w", err)
	}

	patch := ports.ShipmentPatch{UpdatedAt: s.now()}
	empty := true

	if input.Status != nil {
		status := domain.ShipmentStatus(*input.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("patch shipment: %w: %q", domain.ErrInvalidStatus, *input.Status)
		}
		patch.Status = &status
		empty = false
	}

	patch.Name = input.Name
	patch.Agency = input.Agency
	patch.ShipmentType = input.ShipmentType
	patch.ShipmentMode = input.ShipmentMode
	patch.PaymentMode = input.PaymentMode
	patch.CarrierRef = input.CarrierRef
	patch.Location = input.Location
	patch.EstimatedHours = input.EstimatedHours
	if input.Name != nil || input.Agency != nil || input.ShipmentType != nil ||
		input.ShipmentMode != nil || input.PaymentMode != nil || input.CarrierRef != nil ||
		input.Location != nil || input.EstimatedHours != nil {
		empty = false
	}

	if input.CurrentLat != nil || input.CurrentLng != nil {
		current := coordinatesOrZero(shipment.Current)
		if input.CurrentLat != nil {
			current.Lat = *input.CurrentLat
		}
		if input.CurrentLng != nil {
			current.Lng = *input.CurrentLng
		}
		patch.Current = &current
		empty = false
	}
	if input.DestLat != nil || input.DestLng != nil {
		dest := coordinatesOrZero(shipment.Dest)
		if input.DestLat != nil {
			dest.Lat = *input.DestLat
		}
		if input.DestLng != nil {
			dest.Lng = *input.DestLng
		}
		patch.Dest = &dest
		empty = false
	}

	if input.HasProducts {
		products := normalizeProducts(input.Products)
		patch.Products = &products
		empty = false
	}

	if empty {
		return nil, domain.ErrEmptyPatch
	}

	updated, err := s.repo.UpdateByID(ctx, shipment.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("patch shipment: %w", err)
	}
	return updated, nil
}

// List returns every shipment, newest first, for the staff dashboard.
func (s *ShipmentService) List(ctx context.Context) ([]*domain.Shipment, error) {
	shipments, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	return shipments, nil
}

// UpdateLocation manually overrides the current position.
func (s *ShipmentService) UpdateLocation(ctx context.Context, code string, lat, lng float64) error {
	shipment, err := s.repo.FindByCode(ctx, normalizeCode(code))
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}

	current := domain.Coordinates{Lat: lat, Lng: lng}
	if _, err := s.repo.UpdateByID(ctx, shipment.ID, ports.ShipmentPatch{
		Current:   &current,
		UpdatedAt: s.now(),
	}); err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// History synthesizes a tracking log from the single shipment record:
// booking, an optional mid-transit progress entry, and the latest status,
// newest first. A dedicated history table would replace this.
func (s *ShipmentService) History(ctx context.Context, code string) ([]ports.HistoryEntry, error) {
	shipment, err := s.repo.FindByCode(ctx, normalizeCode(code))
	if err != nil {
		return nil, fmt.Errorf("shipment history: %w", err)
	}

	entries := []ports.HistoryEntry{{
		Timestamp: shipment.UpdatedAt,
		Location:  placeOf(shipment, shipment.Current),
		Status:    string(shipment.Status),
		Remarks:   fmt.Sprintf("Shipment status updated to %s", shipment.Status),
	}}

	if shipment.Progress > 0 && shipment.Progress < 1 && !shipment.CreatedAt.Equal(shipment.UpdatedAt) {
		midpoint := shipment.CreatedAt.Add(shipment.UpdatedAt.Sub(shipment.CreatedAt) / 2)
		entries = append(entries, ports.HistoryEntry{
			Timestamp: midpoint,
			Location:  defaultString(shipment.Location, "In Transit"),
			Status:    string(domain.StatusInTransit),
			Remarks:   fmt.Sprintf("Processing update. Progress: %.0f%%.", shipment.Progress*100),
		})
	}

	entries = append(entries, ports.HistoryEntry{
		Timestamp: shipment.CreatedAt,
		Location:  placeOf(shipment, shipment.Origin),
		Status:    "Booked",
		Remarks:   fmt.Sprintf("Shipment created and booked on %s.", shipment.CreatedAt.Format("Jan 2, 2006")),
	})

	return entries, nil
}

func placeOf(s *domain.Shipment, c *domain.Coordinates) string {
	if s.Location != "" {
		return s.Location
	}
	if c != nil {
		return fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lng)
	}
	return "Unknown"
}

func normalizeProducts(in []ports.ProductInput) []domain.Product {
	products := make([]domain.Product, 0, len(in))
	for _, p := range in {
		products = append(products, domain.Product{
			PieceType:   p.PieceType,
			Description: p.Description,
			Qty:         p.Qty,
			LengthCm:    p.LengthCm,
			WidthCm:     p.WidthCm,
			HeightCm:    p.HeightCm,
			WeightKg:    p.WeightKg,
		}.Normalize())
	}
	return products
}

func toCoordinates(in *ports.CoordinatesInput) *domain.Coordinates {
	if in == nil {
		return nil
	}
	return &domain.Coordinates{Lat: in.Lat, Lng: in.Lng}
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// generateCode returns a shareable tracking code: SHP plus six random
// alphanumerics.
func generateCode() string {
	return "SHP" + randomString(6)
}

// generateCarrierRef returns an opaque carrier display string: LOG plus
// twelve random digits.
func generateCarrierRef() string {
	return "LOG" + randomDigits(12)
}

func randomString(n int) string {
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			// fallback: derive from the clock
			out[i] = codeAlphabet[time.Now().UnixNano()%int64(len(codeAlphabet))]
			continue
		}
		out[i] = codeAlphabet[idx.Int64()]
	}
	return string(out)
}

func randomDigits(n int) string {
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			out[i] = byte('0' + time.Now().UnixNano()%10)
			continue
		}
		out[i] = byte('0' + idx.Int64())
	}
	return string(out)
}
