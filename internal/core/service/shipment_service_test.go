package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hiptrack/shipment-tracker/internal/core/domain"
	"github.com/hiptrack/shipment-tracker/internal/core/ports"
)

func minimalCreateInput() ports.CreateShipmentInput {
	return ports.CreateShipmentInput{
		Name:     "Electronics pallet",
		Shipper:  ports.PartyInput{Name: "Acme", Address: "1 Dock Rd"},
		Receiver: ports.PartyInput{Name: "Ada", Address: "2 Harbor St", Email: "ada@example.com"},
		Origin:   &ports.CoordinatesInput{Lat: 0, Lng: 0},
		Dest:     &ports.CoordinatesInput{Lat: 10, Lng: 10},
		EstimatedHours: 10,
	}
}

func TestCreate_GeneratesCodeAndCarrierRef(t *testing.T) {
	repo := newStubShipmentRepo()
	svc := NewShipmentService(repo, discardLogger)

	result, err := svc.Create(context.Background(), minimalCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(result.Code, "SHP") || len(result.Code) != 9 {
		t.Errorf("code format wrong: %q", result.Code)
	}
	if !strings.HasPrefix(result.CarrierRef, "LOG") || len(result.CarrierRef) != 15 {
		t.Errorf("carrier ref format wrong: %q", result.CarrierRef)
	}
}

func TestCreate_CurrentDefaultsToOrigin(t *testing.T) {
	repo := newStubShipmentRepo()
	svc := NewShipmentService(repo, discardLogger)

	result, err := svc.Create(context.Background(), minimalCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := repo.FindByCode(context.Background(), result.Code)
	if stored.Current == nil || *stored.Current != *stored.Origin {
		t.Errorf("current = %+v, want origin %+v", stored.Current, stored.Origin)
	}
	if stored.Progress != 0 {
		t.Errorf("progress = %v, want 0 at creation", stored.Progress)
	}
	if stored.Status != domain.StatusInTransit {
		t.Errorf("status = %q, want default In Transit", stored.Status)
	}
}

func TestCreate_NormalizesProducts(t *testing.T) {
	repo := newStubShipmentRepo()
	svc := NewShipmentService(repo, discardLogger)

	input := minimalCreateInput()
	input.Products = []ports.ProductInput{
		{Description: "crate", Qty: 0, WeightKg: -2},
		{PieceType: "Pallet", Qty: 3, LengthCm: 120},
	}

	result, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := repo.FindByCode(context.Background(), result.Code)
	if len(stored.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(stored.Products))
	}
	if stored.Products[0].Qty != 1 {
		t.Errorf("missing qty must default to 1, got %d", stored.Products[0].Qty)
	}
	if stored.Products[0].WeightKg != 0 {
		t.Errorf("negative weight must clamp to 0, got %v", stored.Products[0].WeightKg)
	}
}

func TestCreate_RejectsInvalidStatus(t *testing.T) {
	repo := newStubShipmentRepo()
	svc := NewShipmentService(repo, discardLogger)

	input := minimalCreateInput()
	input.Status = "Launched"
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestPatch_AllowListedFields(t *testing.T) {
	repo := newStubShipmentRepo(testShipment())
	svc := NewShipmentService(repo, discardLogger)
	svc.now = func() time.Time { return testEpoch.Add(time.Hour) }

	agency := "Northwind"
	_, err := svc.Patch(context.Background(), "SHPTEST01", ports.PatchShipmentInput{Agency: &agency})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastPatch == nil || repo.lastPatch.Agency == nil || *repo.lastPatch.Agency != "Northwind" {
		t.Errorf("agency not forwarded to the store patch")
	}
	if !repo.lastPatch.UpdatedAt.Equal(testEpoch.Add(time.Hour)) {
		t.Errorf("updated_at = %v, want stamped to now", repo.lastPatch.UpdatedAt)
	}
}

func TestPatch_InvalidStatusLeavesRecordUntouched(t *testing.T) {
	repo := newStubShipmentRepo(testShipment())
	svc := NewShipmentService(repo, discardLogger)

	_, err := svc.Patch(context.Background(), "SHPTEST01", ports.PatchShipmentInput{Status: strPtr("Shipped")})
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
	stored, _ := repo.FindByCode(context.Background(), "SHPTEST01")
	if stored.Status != domain.StatusInTransit {
		t.Errorf("stored status = %q, want unchanged", stored.Status)
	}
}

func TestPatch_ReplacesProducts(t *testing.T) {
	s := testShipment()
	s.Products = []domain.Product{{Description: "old", Qty: 5}}
	repo := newStubShipmentRepo(s)
	svc := NewShipmentService(repo, discardLogger)

	_, err := svc.Patch(context.Background(), "SHPTEST01", ports.PatchShipmentInput{
		HasProducts: true,
		Products:    []ports.ProductInput{{Description: "new", Qty: 0}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastPatch.Products == nil {
		t.Fatal("products replacement not forwarded")
	}
	got := *repo.lastPatch.Products
	if len(got) != 1 || got[0].Description != "new" || got[0].Qty != 1 {
		t.Errorf("products = %+v, want the normalized replacement list", got)
	}
}

func TestPatch_EmptyPayload(t *testing.T) {
	repo := newStubShipmentRepo(testShipment())
	svc := NewShipmentService(repo, discardLogger)

	_, err := svc.Patch(context.Background(), "SHPTEST01", ports.PatchShipmentInput{})
	if !errors.Is(err, domain.ErrEmptyPatch) {
		t.Errorf("err = %v, want ErrEmptyPatch", err)
	}
}

func TestUpdateLocation(t *testing.T) {
	repo := newStubShipmentRepo(testShipment())
	svc := NewShipmentService(repo, discardLogger)

	if err := svc.UpdateLocation(context.Background(), "shptest01", 4.5, 6.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := repo.FindByCode(context.Background(), "SHPTEST01")
	if stored.Current == nil || stored.Current.Lat != 4.5 || stored.Current.Lng != 6.5 {
		t.Errorf("position = %+v, want (4.5, 6.5)", stored.Current)
	}
}

func TestHistory_SynthesizesEntries(t *testing.T) {
	s := testShipment()
	s.Progress = 0.4
	s.UpdatedAt = testEpoch.Add(4 * time.Hour)
	repo := newStubShipmentRepo(s)
	svc := NewShipmentService(repo, discardLogger)

	entries, err := svc.History(context.Background(), "SHPTEST01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries (current, mid-transit, booking), got %d", len(entries))
	}
	if entries[0].Status != string(domain.StatusInTransit) {
		t.Errorf("first entry status = %q, want the current status", entries[0].Status)
	}
	if entries[2].Status != "Booked" {
		t.Errorf("last entry status = %q, want Booked", entries[2].Status)
	}
	if !entries[0].Timestamp.After(entries[2].Timestamp) {
		t.Error("entries must be ordered newest first")
	}
}

func TestHistory_NoMidpointForFreshShipment(t *testing.T) {
	repo := newStubShipmentRepo(testShipment())
	svc := NewShipmentService(repo, discardLogger)

	entries, err := svc.History(context.Background(), "SHPTEST01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries for a fresh shipment, got %d", len(entries))
	}
}
