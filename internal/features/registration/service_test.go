package registration

import (
	"context"
	"errors"
	"testing"

	"go-datasync/internal/features/facility"
	"go-datasync/internal/timezone"
)

func newTestService(t *testing.T) (RegistrationService, *MemoryRegistrationRepository, *facility.Facility) {
	t.Helper()

	facRepo := facility.NewMemoryFacilityRepository()
	fac := &facility.Facility{ID: "FAC_TEST0001", Name: "Mumbai HQ", Timezone: "IST", IsActive: true}
	if err := facRepo.Create(context.Background(), fac); err != nil {
		t.Fatalf("seed facility: %v", err)
	}

	repo := NewMemoryRegistrationRepository()
	return NewRegistrationService(repo, facRepo), repo, fac
}

func TestRegisterDerivesTimestampsOnce(t *testing.T) {
	svc, repo, fac := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{
		FullName:   "Asha Rao",
		FacilityID: fac.ID,
		Timezone:   "EST",
		LocalTime:  "2025-10-07 09:15:00",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if got := timezone.Format(reg.SourceUTC); got != "2025-10-07 14:15:00" {
		t.Errorf("sourceUTC = %s, want 2025-10-07 14:15:00", got)
	}
	if got := timezone.Format(reg.CanonicalTime); got != "2025-10-07 19:45:00" {
		t.Errorf("canonical = %s, want 2025-10-07 19:45:00", got)
	}
	if reg.LocalTime != "2025-10-07 09:15:00" || reg.Timezone != "EST" {
		t.Error("raw local timestamp or designator were not stored as received")
	}

	// The stored copy matches what the service returned: derived
	// timestamps are written once and never recomputed.
	stored, err := repo.List(ctx, "", 0)
	if err != nil || len(stored) != 1 {
		t.Fatalf("stored %d registrations, err %v", len(stored), err)
	}
	if !stored[0].CanonicalTime.Equal(reg.CanonicalTime) || !stored[0].SourceUTC.Equal(reg.SourceUTC) {
		t.Error("persisted derived timestamps differ from ingestion result")
	}
}

func TestRegisterRejectsBeforePersisting(t *testing.T) {
	svc, repo, fac := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{
			name:    "unknown facility",
			input:   RegisterInput{FullName: "X", FacilityID: "FAC_NOPE", Timezone: "IST", LocalTime: "2025-10-07 10:00:00"},
			wantErr: facility.ErrFacilityNotFound,
		},
		{
			name:    "unknown timezone",
			input:   RegisterInput{FullName: "X", FacilityID: fac.ID, Timezone: "XYZ", LocalTime: "2025-10-07 10:00:00"},
			wantErr: timezone.ErrUnknownTimezone,
		},
		{
			name:    "bad timestamp",
			input:   RegisterInput{FullName: "X", FacilityID: fac.ID, Timezone: "IST", LocalTime: "yesterday"},
			wantErr: timezone.ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.input); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Register error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if n, _ := repo.Count(ctx); n != 0 {
		t.Errorf("%d registrations persisted despite validation failures", n)
	}
}

func TestListRegistrationsByCanonicalDate(t *testing.T) {
	svc, _, fac := newTestService(t)
	ctx := context.Background()

	// NZST 02:00 on Oct 8 is Oct 7 in the reporting frame.
	inputs := []RegisterInput{
		{FullName: "A", FacilityID: fac.ID, Timezone: "IST", LocalTime: "2025-10-07 10:00:00"},
		{FullName: "B", FacilityID: fac.ID, Timezone: "NZST", LocalTime: "2025-10-08 02:00:00"},
		{FullName: "C", FacilityID: fac.ID, Timezone: "IST", LocalTime: "2025-10-08 10:00:00"},
	}
	for _, in := range inputs {
		if _, err := svc.Register(ctx, in); err != nil {
			t.Fatalf("Register(%s): %v", in.FullName, err)
		}
	}

	day, err := svc.ListRegistrations(ctx, "2025-10-07")
	if err != nil {
		t.Fatalf("ListRegistrations: %v", err)
	}
	if len(day) != 2 {
		t.Fatalf("got %d registrations for 2025-10-07, want 2", len(day))
	}
}
