package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hiptrack/shipment-tracker/internal/core/domain"
	"github.com/hiptrack/shipment-tracker/internal/core/ports"
)

type stubShipmentService struct {
	createFn         func(ctx context.Context, input ports.CreateShipmentInput) (*ports.CreateShipmentResult, error)
	patchFn          func(ctx context.Context, code string, input ports.PatchShipmentInput) (*domain.Shipment, error)
	listFn           func(ctx context.Context) ([]*domain.Shipment, error)
	updateLocationFn func(ctx context.Context, code string, lat, lng float64) error
	historyFn        func(ctx context.Context, code string) ([]ports.HistoryEntry, error)
}

func (s *stubShipmentService) Create(ctx context.Context, input ports.CreateShipmentInput) (*ports.CreateShipmentResult, error) {
	return s.createFn(ctx, input)
}

func (s *stubShipmentService) Patch(ctx context.Context, code string, input ports.PatchShipmentInput) (*domain.Shipment, error) {
	return s.patchFn(ctx, code, input)
}

func (s *stubShipmentService) List(ctx context.Context) ([]*domain.Shipment, error) {
	return s.listFn(ctx)
}

func (s *stubShipmentService) UpdateLocation(ctx context.Context, code string, lat, lng float64) error {
	return s.updateLocationFn(ctx, code, lat, lng)
}

func (s *stubShipmentService) History(ctx context.Context, code string) ([]ports.HistoryEntry, error) {
	return s.historyFn(ctx, code)
}

func TestShipmentHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	var got ports.CreateShipmentInput
	stub := &stubShipmentService{
		createFn: func(ctx context.Context, input ports.CreateShipmentInput) (*ports.CreateShipmentResult, error) {
			got = input
			return &ports.CreateShipmentResult{
				Code:        "SHP4F7K2A",
				CarrierRef:  "LOG123456789012",
				Origin:      &domain.Coordinates{Lat: 53.55, Lng: 9.99},
				Current:     &domain.Coordinates{Lat: 53.55, Lng: 9.99},
				Destination: &domain.Coordinates{Lat: 38.72, Lng: -9.14},
			}, nil
		},
	}
	h := NewShipmentHandler(stub)

	body := strings.NewReader(`{
		"shipper_name": "Acme GmbH",
		"receiver_name": "Jane Porter",
		"receiver_email": "jane@example.com",
		"origin_lat": 53.55, "origin_lng": 9.99,
		"dest_lat": 38.72, "dest_lng": -9.14,
		"estimated_hours": 72,
		"products": [{"piece_type": "Pallet", "qty": 2}]
	}`)
	req := httptest.NewRequest(http.MethodPost, "/shipments", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	if got.Shipper.Name != "Acme GmbH" || got.Receiver.Email != "jane@example.com" {
		t.Fatalf("party input not mapped: %+v", got)
	}
	if got.Origin == nil || got.Origin.Lat != 53.55 {
		t.Fatalf("origin not mapped: %+v", got.Origin)
	}
	if len(got.Products) != 1 || got.Products[0].Qty != 2 {
		t.Fatalf("products not mapped: %+v", got.Products)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["code"] != "SHP4F7K2A" {
		t.Fatalf("unexpected code: %v", resp["code"])
	}
	coords, ok := resp["coordinates"].(map[string]any)
	if !ok {
		t.Fatalf("expected coordinates object")
	}
	for _, key := range []string{"origin", "current", "destination"} {
		if _, ok := coords[key]; !ok {
			t.Fatalf("missing %s coordinates", key)
		}
	}
}

func TestShipmentHandler_Create_MissingShipperName(t *testing.T) {
	e := newTestEcho()
	stub := &stubShipmentService{
		createFn: func(ctx context.Context, input ports.CreateShipmentInput) (*ports.CreateShipmentResult, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	}
	h := NewShipmentHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/shipments", strings.NewReader(`{"receiver_name":"Jane"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestShipmentHandler_Patch_ProductsReplacement(t *testing.T) {
	e := newTestEcho()
	shipment := sampleShipment()
	var got ports.PatchShipmentInput
	stub := &stubShipmentService{
		patchFn: func(ctx context.Context, code string, input ports.PatchShipmentInput) (*domain.Shipment, error) {
			got = input
			return &shipment, nil
		},
	}
	h := NewShipmentHandler(stub)

	body := strings.NewReader(`{"products":[{"piece_type":"Crate","qty":3}]}`)
	req := httptest.NewRequest(http.MethodPatch, "/shipments/SHP4F7K2A", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("code")
	c.SetParamValues("SHP4F7K2A")

	if err := h.Patch(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if !got.HasProducts || len(got.Products) != 1 || got.Products[0].PieceType != "Crate" {
		t.Fatalf("products replacement not signalled: %+v", got)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success envelope, got %+v", resp)
	}
	if _, ok := resp["data"].(map[string]any); !ok {
		t.Fatalf("expected data payload")
	}
}

func TestShipmentHandler_Patch_OmittedProductsNotReplaced(t *testing.T) {
	e := newTestEcho()
	shipment := sampleShipment()
	var got ports.PatchShipmentInput
	stub := &stubShipmentService{
		patchFn: func(ctx context.Context, code string, input ports.PatchShipmentInput) (*domain.Shipment, error) {
			got = input
			return &shipment, nil
		},
	}
	h := NewShipmentHandler(stub)

	req := httptest.NewRequest(http.MethodPatch, "/shipments/SHP4F7K2A", strings.NewReader(`{"location":"Rotterdam"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("code")
	c.SetParamValues("SHP4F7K2A")

	if err := h.Patch(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.HasProducts {
		t.Fatalf("omitted products must not trigger replacement")
	}
	if got.Location == nil || *got.Location != "Rotterdam" {
		t.Fatalf("location not forwarded: %+v", got)
	}
}

func TestShipmentHandler_History(t *testing.T) {
	e := newTestEcho()
	shipment := sampleShipment()
	stub := &stubShipmentService{
		historyFn: func(ctx context.Context, code string) ([]ports.HistoryEntry, error) {
			return []ports.HistoryEntry{
				{Timestamp: shipment.UpdatedAt, Status: "In Transit", Location: "En route"},
				{Timestamp: shipment.CreatedAt, Status: "Booked", Location: "Hamburg"},
			}, nil
		},
	}
	h := NewShipmentHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/history/SHP4F7K2A", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("code")
	c.SetParamValues("SHP4F7K2A")

	if err := h.History(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0]["status"] != "In Transit" || resp[1]["status"] != "Booked" {
		t.Fatalf("unexpected history payload: %+v", resp)
	}
}
