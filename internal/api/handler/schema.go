package handler

import (
	"time"

	"github.com/hiptrack/shipment-tracker/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type productRequest struct {
	PieceType   string  `json:"piece_type"`
	Description string  `json:"description"`
	Qty         int     `json:"qty"`
	LengthCm    float64 `json:"length_cm"`
	WidthCm     float64 `json:"width_cm"`
	HeightCm    float64 `json:"height_cm"`
	WeightKg    float64 `json:"weight_kg"`
}

type createShipmentRequest struct {
	Name   string `json:"name"`
	Agency string `json:"agency"`

	ShipperName    string `json:"shipper_name"    validate:"required"`
	ShipperAddress string `json:"shipper_address"`
	ShipperPhone   string `json:"shipper_phone"`

	ReceiverName    string `json:"receiver_name"    validate:"required"`
	ReceiverAddress string `json:"receiver_address"`
	ReceiverPhone   string `json:"receiver_phone"`
	ReceiverEmail   string `json:"receiver_email"   validate:"omitempty,email"`

	OriginLat  *float64 `json:"origin_lat"`
	OriginLng  *float64 `json:"origin_lng"`
	CurrentLat *float64 `json:"current_lat"`
	CurrentLng *float64 `json:"current_lng"`
	DestLat    *float64 `json:"dest_lat"`
	DestLng    *float64 `json:"dest_lng"`

	EstimatedHours float64 `json:"estimated_hours" validate:"gte=0"`
	Status         string  `json:"status"`

	Products []productRequest `json:"products"`

	ShipmentType string `json:"shipment_type"`
	ShipmentMode string `json:"shipment_mode"`
	PaymentMode  string `json:"payment_mode"`
	CarrierRef   string `json:"carrier_ref"`
	Location     string `json:"location"`
	AdminComment string `json:"admin_comment"`
}

// patchShipmentRequest is the administrative allow-list. Absent fields are
// left untouched; identity and timing fields have no place here at all.
type patchShipmentRequest struct {
	Name           *string  `json:"name"`
	Agency         *string  `json:"agency"`
	Status         *string  `json:"status"`
	ShipmentType   *string  `json:"shipment_type"`
	ShipmentMode   *string  `json:"shipment_mode"`
	PaymentMode    *string  `json:"payment_mode"`
	CarrierRef     *string  `json:"carrier_ref"`
	Location       *string  `json:"location"`
	CurrentLat     *float64 `json:"current_lat"`
	CurrentLng     *float64 `json:"current_lng"`
	DestLat        *float64 `json:"dest_lat"`
	DestLng        *float64 `json:"dest_lng"`
	EstimatedHours *float64 `json:"estimated_hours"`

	Products *[]productRequest `json:"products"`
}

type patchTrackingRequest struct {
	Status       *string  `json:"status"`
	CurrentLat   *float64 `json:"current_lat"`
	CurrentLng   *float64 `json:"current_lng"`
	Progress     *float64 `json:"progress"`
	AdminComment *string  `json:"admin_comment"`
}

type simulateMovementRequest struct {
	Code string `json:"code" validate:"required"`
}

type updateLocationRequest struct {
	Code string  `json:"code" validate:"required"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type sendMessageRequest struct {
	ConversationID string `json:"conversation_id" validate:"required"`
	SenderName     string `json:"sender_name"`
	Text           string `json:"text"`
	Sticker        string `json:"sticker"`
	FileURL        string `json:"file_url"`
	FromAdmin      bool   `json:"from_admin"`
}

type submitFeedbackRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// --- Response types ---

// shipmentPayload is the flat record shape the tracking and admin pages
// consume. Coordinates are pointers so "no fix yet" serializes as null
// instead of a misleading (0,0).
type shipmentPayload struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Agency string `json:"agency,omitempty"`

	ShipperName    string `json:"shipper_name"`
	ShipperAddress string `json:"shipper_address"`
	ShipperPhone   string `json:"shipper_phone,omitempty"`

	ReceiverName    string `json:"receiver_name"`
	ReceiverAddress string `json:"receiver_address"`
	ReceiverPhone   string `json:"receiver_phone,omitempty"`
	ReceiverEmail   string `json:"receiver_email,omitempty"`

	OriginLat  *float64 `json:"origin_lat"`
	OriginLng  *float64 `json:"origin_lng"`
	CurrentLat *float64 `json:"current_lat"`
	CurrentLng *float64 `json:"current_lng"`
	DestLat    *float64 `json:"dest_lat"`
	DestLng    *float64 `json:"dest_lng"`

	EstimatedHours float64 `json:"estimated_hours"`
	Progress       float64 `json:"progress"`
	Status         string  `json:"status"`

	Products []productRequest `json:"products"`

	ShipmentType string `json:"shipment_type"`
	ShipmentMode string `json:"shipment_mode"`
	PaymentMode  string `json:"payment_mode"`
	CarrierRef   string `json:"carrier_ref"`
	Location     string `json:"location,omitempty"`
	AdminComment string `json:"admin_comment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// trackingResponse is the shipment payload plus the derived display fields.
type trackingResponse struct {
	shipmentPayload
	DistanceProgress float64    `json:"distance_progress"`
	EstimatedArrival *time.Time `json:"estimated_arrival,omitempty"`
}

type coordinatePair struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type createShipmentResponse struct {
	Code        string                    `json:"code"`
	CarrierRef  string                    `json:"carrier_ref"`
	Message     string                    `json:"message"`
	Coordinates map[string]coordinatePair `json:"coordinates"`
}

type patchShipmentResponse struct {
	Success bool            `json:"success"`
	Data    shipmentPayload `json:"data"`
}

type simulateMovementResponse struct {
	Code      string   `json:"code"`
	Performed bool     `json:"performed"`
	Message   string   `json:"message,omitempty"`
	Progress  float64  `json:"progress"`
	Status    string   `json:"status"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
}

type submitFeedbackResponse struct {
	Success bool            `json:"success"`
	Data    domain.Feedback `json:"data"`
}

type historyEntryResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	Remarks   string    `json:"remarks,omitempty"`
}
