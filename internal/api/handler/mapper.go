package handler

import (
	"github.com/hiptrack/shipment-tracker/internal/core/domain"
	"github.com/hiptrack/shipment-tracker/internal/core/ports"
)

func toShipmentPayload(s *domain.Shipment) shipmentPayload {
	p := shipmentPayload{
		ID:              s.ID,
		Code:            s.Code,
		Name:            s.Name,
		Agency:          s.Agency,
		ShipperName:     s.Shipper.Name,
		ShipperAddress:  s.Shipper.Address,
		ShipperPhone:    s.Shipper.Phone,
		ReceiverName:    s.Receiver.Name,
		ReceiverAddress: s.Receiver.Address,
		ReceiverPhone:   s.Receiver.Phone,
		ReceiverEmail:   s.Receiver.Email,
		EstimatedHours:  s.EstimatedHours,
		Progress:        s.Progress,
		Status:          string(s.Status),
		Products:        toProductRequests(s.Products),
		ShipmentType:    s.ShipmentType,
		ShipmentMode:    s.ShipmentMode,
		PaymentMode:     s.PaymentMode,
		CarrierRef:      s.CarrierRef,
		Location:        s.Location,
		AdminComment:    s.AdminComment,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	p.OriginLat, p.OriginLng = splitCoordinates(s.Origin)
	p.CurrentLat, p.CurrentLng = splitCoordinates(s.Current)
	p.DestLat, p.DestLng = splitCoordinates(s.Dest)
	return p
}

func toProductRequests(products []domain.Product) []productRequest {
	out := make([]productRequest, 0, len(products))
	for _, p := range products {
		out = append(out, productRequest{
			PieceType:   p.PieceType,
			Description: p.Description,
			Qty:         p.Qty,
			LengthCm:    p.LengthCm,
			WidthCm:     p.WidthCm,
			HeightCm:    p.HeightCm,
			WeightKg:    p.WeightKg,
		})
	}
	return out
}

func toProductInputs(products []productRequest) []ports.ProductInput {
	out := make([]ports.ProductInput, 0, len(products))
	for _, p := range products {
		out = append(out, ports.ProductInput{
			PieceType:   p.PieceType,
			Description: p.Description,
			Qty:         p.Qty,
			LengthCm:    p.LengthCm,
			WidthCm:     p.WidthCm,
			HeightCm:    p.HeightCm,
			WeightKg:    p.WeightKg,
		})
	}
	return out
}

func splitCoordinates(c *domain.Coordinates) (*float64, *float64) {
	if c == nil {
		return nil, nil
	}
	lat, lng := c.Lat, c.Lng
	return &lat, &lng
}

func toCoordinatesInput(lat, lng *float64) *ports.CoordinatesInput {
	if lat == nil || lng == nil {
		return nil
	}
	return &ports.CoordinatesInput{Lat: *lat, Lng: *lng}
}

func pairFromCoordinates(c *domain.Coordinates) coordinatePair {
	lat, lng := splitCoordinates(c)
	return coordinatePair{Lat: lat, Lng: lng}
}
