package metrics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go-datasync/internal/features/facility"
	"go-datasync/internal/features/registration"
	"go-datasync/internal/features/sync"
	"go-datasync/internal/features/target"
)

type fixtures struct {
	svc  MetricsService
	logs *sync.MemoryOperationLogRepository
	facs *facility.MemoryFacilityRepository
	tgts *target.MemoryTargetRepository
	regs *registration.MemoryRegistrationRepository
}

func newFixtures(t *testing.T) *fixtures {
	t.Helper()
	f := &fixtures{
		logs: sync.NewMemoryOperationLogRepository(),
		facs: facility.NewMemoryFacilityRepository(),
		tgts: target.NewMemoryTargetRepository(),
		regs: registration.NewMemoryRegistrationRepository(),
	}
	f.svc = NewMetricsService(f.logs, f.facs, f.tgts, f.regs)
	return f
}

func (f *fixtures) seedFacility(t *testing.T, id, tz string) {
	t.Helper()
	err := f.facs.Create(context.Background(), &facility.Facility{
		ID: id, Name: id, Timezone: tz, IsActive: true,
	})
	if err != nil {
		t.Fatalf("seed facility: %v", err)
	}
}

var seedSeq int

func (f *fixtures) seedOp(t *testing.T, facilityID string, status sync.OperationStatus, lag float64, startedAt time.Time) {
	t.Helper()
	seedSeq++
	var completed *time.Time
	if status.Terminal() {
		done := startedAt.Add(time.Second)
		completed = &done
	}
	err := f.logs.Create(context.Background(), &sync.OperationLog{
		ID:               fmt.Sprintf("LOG_%08X", seedSeq),
		SourceFacilityID: facilityID,
		TargetID:         "TGT_METRICS1",
		Kind:             sync.KindManual,
		Attempt:          1,
		LagSeconds:       lag,
		Status:           status,
		StartedAt:        startedAt,
		CompletedAt:      completed,
	})
	if err != nil {
		t.Fatalf("seed operation: %v", err)
	}
}

func TestLagStats(t *testing.T) {
	f := newFixtures(t)
	f.seedFacility(t, "FAC_A", "EST")
	now := time.Now().UTC()

	for _, lag := range []float64{10, 20, 30, 40, 100} {
		f.seedOp(t, "FAC_A", sync.StatusSuccess, lag, now)
	}
	// Failed and in-flight rows never contribute to lag.
	f.seedOp(t, "FAC_A", sync.StatusFailed, 9999, now)
	f.seedOp(t, "FAC_A", sync.StatusRunning, 9999, now)

	stats, err := f.svc.LagStats(context.Background(), "", "", Window{})
	if err != nil {
		t.Fatalf("LagStats: %v", err)
	}
	if stats.SampleCount != 5 {
		t.Fatalf("sample count = %d, want 5", stats.SampleCount)
	}
	if stats.Min != 10 || stats.Max != 100 {
		t.Errorf("min/max = %.0f/%.0f, want 10/100", stats.Min, stats.Max)
	}
	if stats.Mean != 40 {
		t.Errorf("mean = %.1f, want 40", stats.Mean)
	}
	if stats.P95 != 100 {
		t.Errorf("p95 = %.1f, want 100", stats.P95)
	}
}

func TestLagStatsEmptyWindow(t *testing.T) {
	f := newFixtures(t)
	stats, err := f.svc.LagStats(context.Background(), "", "", Window{})
	if err != nil {
		t.Fatalf("LagStats: %v", err)
	}
	if stats.SampleCount != 0 || stats.Min != 0 || stats.Max != 0 || stats.Mean != 0 || stats.P95 != 0 {
		t.Errorf("empty window stats = %+v, want all zeros", stats)
	}
}

func TestSuccessRate(t *testing.T) {
	f := newFixtures(t)
	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		f.seedOp(t, "FAC_A", sync.StatusSuccess, 1, now)
	}
	f.seedOp(t, "FAC_A", sync.StatusFailed, 0, now)

	rate, err := f.svc.SuccessRate(context.Background(), "", "", Window{})
	if err != nil {
		t.Fatalf("SuccessRate: %v", err)
	}
	if rate.NoData {
		t.Fatal("no_data set on a populated window")
	}
	if rate.Rate != 0.75 || rate.Success != 3 || rate.Failed != 1 {
		t.Errorf("rate = %+v, want 0.75 with 3/1", rate)
	}
}

func TestSuccessRateNoData(t *testing.T) {
	f := newFixtures(t)
	// A pending row is not terminal, so the window is effectively empty.
	f.seedOp(t, "FAC_A", sync.StatusPending, 0, time.Now().UTC())

	rate, err := f.svc.SuccessRate(context.Background(), "", "", Window{})
	if err != nil {
		t.Fatalf("SuccessRate: %v", err)
	}
	if !rate.NoData {
		t.Error("no_data not set for a window without terminal rows")
	}
	if rate.Rate != 0 {
		t.Errorf("rate = %.2f, want 0", rate.Rate)
	}
}

func TestSuccessRateWindowBounds(t *testing.T) {
	f := newFixtures(t)
	now := time.Now().UTC()
	f.seedOp(t, "FAC_A", sync.StatusSuccess, 1, now.Add(-2*time.Hour))
	f.seedOp(t, "FAC_A", sync.StatusFailed, 0, now)

	window := Window{From: now.Add(-time.Hour)}
	rate, err := f.svc.SuccessRate(context.Background(), "", "", window)
	if err != nil {
		t.Fatalf("SuccessRate: %v", err)
	}
	if rate.Success != 0 || rate.Failed != 1 {
		t.Errorf("windowed counts = %d/%d, want 0/1", rate.Success, rate.Failed)
	}
}

func TestOffsetComparison(t *testing.T) {
	f := newFixtures(t)
	f.seedFacility(t, "FAC_BOSTON", "EST")
	f.seedFacility(t, "FAC_NYC", "EST")
	f.seedFacility(t, "FAC_MUMBAI", "IST")
	now := time.Now().UTC()

	f.seedOp(t, "FAC_BOSTON", sync.StatusSuccess, 100, now)
	f.seedOp(t, "FAC_NYC", sync.StatusFailed, 0, now)
	f.seedOp(t, "FAC_MUMBAI", sync.StatusSuccess, 10, now)

	groups, err := f.svc.OffsetComparison(context.Background(), Window{})
	if err != nil {
		t.Fatalf("OffsetComparison: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	// Sorted by offset: EST (-300) before IST (+330).
	est := groups[0]
	if est.OffsetMinutes != -300 || est.FacilityCount != 2 {
		t.Errorf("EST group = %+v, want offset -300 with 2 facilities", est)
	}
	if est.Offset != "-5.0 hours" {
		t.Errorf("EST offset label = %q, want -5.0 hours", est.Offset)
	}
	if est.Success.Rate != 0.5 {
		t.Errorf("EST success rate = %.2f, want 0.5", est.Success.Rate)
	}
	if est.Lag.SampleCount != 1 || est.Lag.Max != 100 {
		t.Errorf("EST lag = %+v, want one sample of 100", est.Lag)
	}

	ist := groups[1]
	if ist.OffsetMinutes != 330 || ist.Success.Rate != 1 {
		t.Errorf("IST group = %+v, want offset 330 with rate 1", ist)
	}
}

func TestTimezoneStats(t *testing.T) {
	f := newFixtures(t)
	f.seedFacility(t, "FAC_BOSTON", "EST")
	f.seedFacility(t, "FAC_NYC", "EST")
	f.seedFacility(t, "FAC_MUMBAI", "IST")

	for i, facID := range []string{"FAC_BOSTON", "FAC_BOSTON", "FAC_MUMBAI"} {
		err := f.regs.Create(context.Background(), &registration.PatientRegistration{
			PatientID:  fmt.Sprintf("PAT_%08d", i),
			FacilityID: facID,
		})
		if err != nil {
			t.Fatalf("seed registration: %v", err)
		}
	}

	stats, err := f.svc.TimezoneStats(context.Background())
	if err != nil {
		t.Fatalf("TimezoneStats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d groups, want 2", len(stats))
	}

	est := stats[0]
	if est.Timezone != "EST" || est.FacilityCount != 2 || est.RegistrationCount != 2 {
		t.Errorf("EST stats = %+v, want 2 facilities and 2 registrations", est)
	}
	if est.OffsetFromIST != "-10.5 hours" {
		t.Errorf("EST offset from reporting = %q, want -10.5 hours", est.OffsetFromIST)
	}

	ist := stats[1]
	if ist.Timezone != "IST" || ist.RegistrationCount != 1 {
		t.Errorf("IST stats = %+v, want 1 registration", ist)
	}
}

func TestOverview(t *testing.T) {
	f := newFixtures(t)
	f.seedFacility(t, "FAC_A", "EST")
	f.seedFacility(t, "FAC_B", "IST")
	f.facs.Deactivate(context.Background(), "FAC_B")

	err := f.tgts.Create(context.Background(), &target.SyncTarget{
		ID: "TGT_METRICS1", Name: "Warehouse", Kind: target.KindWarehouse, IsActive: true,
	})
	if err != nil {
		t.Fatalf("seed target: %v", err)
	}

	now := time.Now().UTC()
	f.seedOp(t, "FAC_A", sync.StatusSuccess, 42, now)
	f.seedOp(t, "FAC_A", sync.StatusFailed, 0, now)

	overview, err := f.svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if overview.TotalFacilities != 2 || overview.ActiveFacilities != 1 {
		t.Errorf("facilities = %d/%d, want 2 total 1 active", overview.TotalFacilities, overview.ActiveFacilities)
	}
	if overview.TotalTargets != 1 {
		t.Errorf("targets = %d, want 1", overview.TotalTargets)
	}
	if overview.Operations.Rate != 0.5 {
		t.Errorf("operations rate = %.2f, want 0.5", overview.Operations.Rate)
	}
	if overview.Lag.SampleCount != 1 || overview.Lag.Mean != 42 {
		t.Errorf("lag = %+v, want one sample of 42", overview.Lag)
	}
	if len(overview.RecentOperations) != 2 {
		t.Errorf("recent operations = %d, want 2", len(overview.RecentOperations))
	}
}
