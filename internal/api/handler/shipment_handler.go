package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hiptrack/shipment-tracker/internal/core/ports"
)

// ShipmentHandler serves the staff-facing shipment administration surface.
type ShipmentHandler struct {
	service ports.ShipmentService
}

func NewShipmentHandler(service ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

// Create handles POST /shipments.
//
// @Summary      Register a new shipment
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createShipmentRequest  true  "Shipment details"
// @Success      201   {object}  createShipmentResponse
// @Failure      400   {object}  errorResponse
// @Router       /shipments [post]
func (h *ShipmentHandler) Create(c echo.Context) error {
	var req createShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Create(c.Request().Context(), ports.CreateShipmentInput{
		Name:   req.Name,
		Agency: req.Agency,
		Shipper: ports.PartyInput{
			Name:    req.ShipperName,
			Address: req.ShipperAddress,
			Phone:   req.ShipperPhone,
		},
		Receiver: ports.PartyInput{
			Name:    req.ReceiverName,
			Address: req.ReceiverAddress,
			Phone:   req.ReceiverPhone,
			Email:   req.ReceiverEmail,
		},
		Origin:         toCoordinatesInput(req.OriginLat, req.OriginLng),
		Current:        toCoordinatesInput(req.CurrentLat, req.CurrentLng),
		Dest:           toCoordinatesInput(req.DestLat, req.DestLng),
		EstimatedHours: req.EstimatedHours,
		Status:         req.Status,
		Products:       toProductInputs(req.Products),
		ShipmentType:   req.ShipmentType,
		ShipmentMode:   req.ShipmentMode,
		PaymentMode:    req.PaymentMode,
		CarrierRef:     req.CarrierRef,
		Location:       req.Location,
		AdminComment:   req.AdminComment,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createShipmentResponse{
		Code:       result.Code,
		CarrierRef: result.CarrierRef,
		Message:    "Shipment created successfully",
		Coordinates: map[string]coordinatePair{
			"origin":      pairFromCoordinates(result.Origin),
			"current":     pairFromCoordinates(result.Current),
			"destination": pairFromCoordinates(result.Destination),
		},
	})
}

// List handles GET /shipments.
//
// @Summary      List all shipments, newest first
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  shipmentPayload
// @Router       /shipments [get]
func (h *ShipmentHandler) List(c echo.Context) error {
	shipments, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]shipmentPayload, 0, len(shipments))
	for _, s := range shipments {
		out = append(out, toShipmentPayload(s))
	}
	return c.JSON(http.StatusOK, out)
}

// Patch handles PATCH /shipments/:code.
//
// @Summary      Update shipment fields
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        code  path      string                true  "Shipment code"
// @Param        body  body      patchShipmentRequest  true  "Fields to update"
// @Success      200   {object}  patchShipmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /shipments/{code} [patch]
func (h *ShipmentHandler) Patch(c echo.Context) error {
	code := c.Param("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing shipment code")
	}

	var req patchShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input := ports.PatchShipmentInput{
		Name:           req.Name,
		Agency:         req.Agency,
		Status:         req.Status,
		ShipmentType:   req.ShipmentType,
		ShipmentMode:   req.ShipmentMode,
		PaymentMode:    req.PaymentMode,
		CarrierRef:     req.CarrierRef,
		Location:       req.Location,
		CurrentLat:     req.CurrentLat,
		CurrentLng:     req.CurrentLng,
		DestLat:        req.DestLat,
		DestLng:        req.DestLng,
		EstimatedHours: req.EstimatedHours,
	}
	if req.Products != nil {
		input.Products = toProductInputs(*req.Products)
		input.HasProducts = true
	}

	updated, err := h.service.Patch(c.Request().Context(), code, input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, patchShipmentResponse{
		Success: true,
		Data:    toShipmentPayload(updated),
	})
}

// UpdateLocation handles POST /shipments/update-location.
//
// @Summary      Manually override the current position
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateLocationRequest  true  "Code and coordinates"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /shipments/update-location [post]
func (h *ShipmentHandler) UpdateLocation(c echo.Context) error {
	var req updateLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateLocation(c.Request().Context(), req.Code, req.Lat, req.Lng); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// History handles GET /history/:code.
//
// @Summary      Synthesized tracking history for a shipment
// @Tags         shipments
// @Produce      json
// @Param        code  path     string  true  "Shipment code"
// @Success      200   {array}  historyEntryResponse
// @Failure      404   {object} errorResponse
// @Router       /history/{code} [get]
func (h *ShipmentHandler) History(c echo.Context) error {
	code := c.Param("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing shipment code")
	}

	entries, err := h.service.History(c.Request().Context(), code)
	if err != nil {
		return err
	}

	out := make([]historyEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyEntryResponse{
			Timestamp: e.Timestamp,
			Location:  e.Location,
			Status:    e.Status,
			Remarks:   e.Remarks,
		})
	}
	return c.JSON(http.StatusOK, out)
}
