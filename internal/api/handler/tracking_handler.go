package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hiptrack/shipment-tracker/internal/core/ports"
)

// TrackingHandler serves the customer-facing tracking surface.
type TrackingHandler struct {
	service ports.TrackingService
}

func NewTrackingHandler(service ports.TrackingService) *TrackingHandler {
	return &TrackingHandler{service: service}
}

// Get handles GET /tracking/:code.
//
// @Summary      Track a shipment
// @Tags         tracking
// @Produce      json
// @Param        code  path      string  true  "Shipment code (e.g. SHP4F7K2A)"
// @Success      200   {object}  trackingResponse
// @Failure      404   {object}  errorResponse
// @Router       /tracking/{code} [get]
func (h *TrackingHandler) Get(c echo.Context) error {
	code := c.Param("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing tracking code")
	}

	view, err := h.service.GetTracking(c.Request().Context(), code)
	if err != nil {
		return err
	}

	resp := trackingResponse{
		shipmentPayload:  toShipmentPayload(&view.Shipment),
		DistanceProgress: view.DistanceProgress,
	}
	if !view.ArrivalAt.IsZero() {
		at := view.ArrivalAt
		resp.EstimatedArrival = &at
	}
	return c.JSON(http.StatusOK, resp)
}

// Patch handles PATCH /tracking/:code.
//
// @Summary      Override status, position, progress or admin comment
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        code  path      string                true  "Shipment code"
// @Param        body  body      patchTrackingRequest  true  "Fields to update"
// @Success      200   {object}  shipmentPayload
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /tracking/{code} [patch]
func (h *TrackingHandler) Patch(c echo.Context) error {
	code := c.Param("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing tracking code")
	}

	var req patchTrackingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.service.PatchTracking(c.Request().Context(), code, ports.TrackingPatchInput{
		Status:       req.Status,
		CurrentLat:   req.CurrentLat,
		CurrentLng:   req.CurrentLng,
		Progress:     req.Progress,
		AdminComment: req.AdminComment,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toShipmentPayload(updated))
}

// SimulateMovement handles POST /shipments/simulate-movement.
//
// @Summary      Force one reconciliation pass for a shipment
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Param        body  body      simulateMovementRequest  true  "Shipment code"
// @Success      200   {object}  simulateMovementResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /shipments/simulate-movement [post]
func (h *TrackingHandler) SimulateMovement(c echo.Context) error {
	var req simulateMovementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.SimulateMovement(c.Request().Context(), req.Code)
	if err != nil {
		return err
	}

	resp := simulateMovementResponse{
		Code:      result.Code,
		Performed: result.Performed,
		Message:   result.Message,
		Progress:  result.Progress,
		Status:    string(result.Status),
	}
	if result.Performed {
		lat, lng := result.Position.Lat, result.Position.Lng
		resp.Lat, resp.Lng = &lat, &lng
	}
	return c.JSON(http.StatusOK, resp)
}
