package facility

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go-datasync/internal/timezone"
)

func TestCreateFacilityValidatesTimezone(t *testing.T) {
	svc := NewFacilityService(NewMemoryFacilityRepository())

	err := svc.CreateFacility(context.Background(), &Facility{
		Name:     "Berlin Clinic",
		Timezone: "CEST",
		IsActive: true,
	})
	if !errors.Is(err, timezone.ErrUnknownTimezone) {
		t.Fatalf("CreateFacility error = %v, want ErrUnknownTimezone", err)
	}

	f := &Facility{Name: "Paris Clinic", Timezone: "CET", IsActive: true}
	if err := svc.CreateFacility(context.Background(), f); err != nil {
		t.Fatalf("CreateFacility error: %v", err)
	}
	if !strings.HasPrefix(f.ID, "FAC_") {
		t.Errorf("generated id %q missing FAC_ prefix", f.ID)
	}
}

func TestListFacilitiesFilters(t *testing.T) {
	svc := NewFacilityService(NewMemoryFacilityRepository())
	ctx := context.Background()

	seed := []Facility{
		{Name: "Mumbai", Timezone: "IST", IsActive: true},
		{Name: "NYC", Timezone: "EST", IsActive: true},
		{Name: "Old NYC", Timezone: "EST", IsActive: false},
	}
	for i := range seed {
		if err := svc.CreateFacility(ctx, &seed[i]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	all, err := svc.ListFacilities(ctx, ListFilter{})
	if err != nil || len(all) != 3 {
		t.Fatalf("ListFacilities() = %d facilities, err %v; want 3", len(all), err)
	}
	// Insertion order is preserved.
	if all[0].Name != "Mumbai" || all[2].Name != "Old NYC" {
		t.Errorf("unexpected order: %s, %s", all[0].Name, all[2].Name)
	}

	est, err := svc.ListFacilities(ctx, ListFilter{Timezone: "EST"})
	if err != nil || len(est) != 2 {
		t.Fatalf("timezone filter returned %d, err %v; want 2", len(est), err)
	}

	active, err := svc.ListFacilities(ctx, ListFilter{ActiveOnly: true, Timezone: "EST"})
	if err != nil || len(active) != 1 {
		t.Fatalf("active filter returned %d, err %v; want 1", len(active), err)
	}
}

func TestDeactivateKeepsFacility(t *testing.T) {
	svc := NewFacilityService(NewMemoryFacilityRepository())
	ctx := context.Background()

	f := &Facility{Name: "Tokyo Lab", Timezone: "JST", IsActive: true}
	if err := svc.CreateFacility(ctx, f); err != nil {
		t.Fatalf("CreateFacility: %v", err)
	}
	if err := svc.DeactivateFacility(ctx, f.ID); err != nil {
		t.Fatalf("DeactivateFacility: %v", err)
	}

	got, err := svc.GetFacility(ctx, f.ID)
	if err != nil {
		t.Fatalf("GetFacility after deactivate: %v", err)
	}
	if got.IsActive {
		t.Error("facility still active after deactivation")
	}
}

func TestUpdateFacilityCannotTouchWatermark(t *testing.T) {
	repo := NewMemoryFacilityRepository()
	svc := NewFacilityService(repo)
	ctx := context.Background()

	f := &Facility{Name: "Dubai", Timezone: "GST", IsActive: true}
	if err := svc.CreateFacility(ctx, f); err != nil {
		t.Fatalf("CreateFacility: %v", err)
	}

	err := svc.UpdateFacility(ctx, f.ID, map[string]interface{}{
		"location":       "UAE",
		"last_sync_time": time.Now(),
	})
	if err != nil {
		t.Fatalf("UpdateFacility: %v", err)
	}

	got, _ := svc.GetFacility(ctx, f.ID)
	if got.LastSyncTime != nil {
		t.Error("watermark was writable through UpdateFacility")
	}
	if got.Location != "UAE" {
		t.Errorf("location = %q, want UAE", got.Location)
	}

	// The repository-level watermark path still works for the orchestrator.
	mark := time.Now()
	if err := repo.UpdateWatermark(ctx, f.ID, mark); err != nil {
		t.Fatalf("UpdateWatermark: %v", err)
	}
	got, _ = svc.GetFacility(ctx, f.ID)
	if got.LastSyncTime == nil || !got.LastSyncTime.Equal(mark) {
		t.Error("UpdateWatermark did not persist")
	}
}
