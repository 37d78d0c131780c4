package metrics

import (
	"context"
	"math"
	"sort"

	"go-datasync/internal/features/facility"
	"go-datasync/internal/features/registration"
	"go-datasync/internal/features/sync"
	"go-datasync/internal/features/target"
	"go-datasync/internal/timezone"
)

// MetricsService derives dashboard statistics from the operation log and
// the directories. Every operation is read-only; the log is never mutated
// here, and empty windows come back as zero values with the no-data flag
// set rather than an error.
type MetricsService interface {
	LagStats(ctx context.Context, facilityID, targetID string, window Window) (*LagStats, error)
	SuccessRate(ctx context.Context, facilityID, targetID string, window Window) (*SuccessRate, error)
	OffsetComparison(ctx context.Context, window Window) ([]OffsetGroupStats, error)
	TimezoneStats(ctx context.Context) ([]TimezoneGroupStats, error)
	Overview(ctx context.Context) (*Overview, error)
}

type MetricsServiceImpl struct {
	logRepo      sync.OperationLogRepository
	facilityRepo facility.FacilityRepository
	targetRepo   target.TargetRepository
	regRepo      registration.RegistrationRepository
}

func NewMetricsService(
	logRepo sync.OperationLogRepository,
	facilityRepo facility.FacilityRepository,
	targetRepo target.TargetRepository,
	regRepo registration.RegistrationRepository,
) MetricsService {
	return &MetricsServiceImpl{
		logRepo:      logRepo,
		facilityRepo: facilityRepo,
		targetRepo:   targetRepo,
		regRepo:      regRepo,
	}
}

// terminalRows loads finished operations in the window. PENDING and
// RUNNING rows are invisible to the aggregator.
func (s *MetricsServiceImpl) terminalRows(ctx context.Context, facilityID, targetID string, window Window) ([]sync.OperationLog, error) {
	rows, err := s.logRepo.List(ctx, sync.LogFilter{
		FacilityID: facilityID,
		TargetID:   targetID,
		From:       window.From,
		To:         window.To,
		Limit:      10000,
	})
	if err != nil {
		return nil, err
	}
	terminal := rows[:0]
	for _, row := range rows {
		if row.Status.Terminal() {
			terminal = append(terminal, row)
		}
	}
	return terminal, nil
}

func (s *MetricsServiceImpl) LagStats(ctx context.Context, facilityID, targetID string, window Window) (*LagStats, error) {
	rows, err := s.terminalRows(ctx, facilityID, targetID, window)
	if err != nil {
		return nil, err
	}
	stats := computeLag(rows)
	return &stats, nil
}

func (s *MetricsServiceImpl) SuccessRate(ctx context.Context, facilityID, targetID string, window Window) (*SuccessRate, error) {
	rows, err := s.terminalRows(ctx, facilityID, targetID, window)
	if err != nil {
		return nil, err
	}
	rate := computeRate(rows)
	return &rate, nil
}

func (s *MetricsServiceImpl) OffsetComparison(ctx context.Context, window Window) ([]OffsetGroupStats, error) {
	facilities, err := s.facilityRepo.List(ctx, facility.ListFilter{})
	if err != nil {
		return nil, err
	}

	facilityOffset := make(map[string]int, len(facilities))
	groupTimezones := make(map[int]map[string]struct{})
	groupFacilities := make(map[int]int)
	for _, f := range facilities {
		off, err := timezone.OffsetFor(f.Timezone)
		if err != nil {
			continue
		}
		facilityOffset[f.ID] = off.Minutes
		if groupTimezones[off.Minutes] == nil {
			groupTimezones[off.Minutes] = make(map[string]struct{})
		}
		groupTimezones[off.Minutes][f.Timezone] = struct{}{}
		groupFacilities[off.Minutes]++
	}

	rows, err := s.terminalRows(ctx, "", "", window)
	if err != nil {
		return nil, err
	}
	groupRows := make(map[int][]sync.OperationLog)
	for _, row := range rows {
		minutes, ok := facilityOffset[row.SourceFacilityID]
		if !ok {
			continue
		}
		groupRows[minutes] = append(groupRows[minutes], row)
	}

	out := make([]OffsetGroupStats, 0, len(groupFacilities))
	for minutes, count := range groupFacilities {
		timezones := make([]string, 0, len(groupTimezones[minutes]))
		for tz := range groupTimezones[minutes] {
			timezones = append(timezones, tz)
		}
		sort.Strings(timezones)

		out = append(out, OffsetGroupStats{
			OffsetMinutes: minutes,
			Offset:        timezone.Offset{Minutes: minutes}.String(),
			Timezones:     timezones,
			FacilityCount: count,
			Lag:           computeLag(groupRows[minutes]),
			Success:       computeRate(groupRows[minutes]),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].OffsetMinutes < out[j].OffsetMinutes
	})
	return out, nil
}

func (s *MetricsServiceImpl) TimezoneStats(ctx context.Context) ([]TimezoneGroupStats, error) {
	facilities, err := s.facilityRepo.List(ctx, facility.ListFilter{})
	if err != nil {
		return nil, err
	}
	regCounts, err := s.regRepo.CountByFacility(ctx)
	if err != nil {
		return nil, err
	}

	byTimezone := make(map[string]*TimezoneGroupStats)
	for _, f := range facilities {
		stats, ok := byTimezone[f.Timezone]
		if !ok {
			off, err := timezone.OffsetFor(f.Timezone)
			if err != nil {
				continue
			}
			fromIST, _ := timezone.OffsetToReporting(f.Timezone)
			stats = &TimezoneGroupStats{
				Timezone:      f.Timezone,
				OffsetMinutes: off.Minutes,
				OffsetFromIST: fromIST,
			}
			byTimezone[f.Timezone] = stats
		}
		stats.FacilityCount++
		stats.RegistrationCount += regCounts[f.ID]
	}

	out := make([]TimezoneGroupStats, 0, len(byTimezone))
	for _, stats := range byTimezone {
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timezone < out[j].Timezone
	})
	return out, nil
}

func (s *MetricsServiceImpl) Overview(ctx context.Context) (*Overview, error) {
	facilities, err := s.facilityRepo.List(ctx, facility.ListFilter{})
	if err != nil {
		return nil, err
	}
	active := 0
	for _, f := range facilities {
		if f.IsActive {
			active++
		}
	}

	targets, err := s.targetRepo.List(ctx, target.ListFilter{})
	if err != nil {
		return nil, err
	}
	regCount, err := s.regRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.terminalRows(ctx, "", "", Window{})
	if err != nil {
		return nil, err
	}
	recent, err := s.logRepo.List(ctx, sync.LogFilter{Limit: 10})
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []sync.OperationLog{}
	}

	return &Overview{
		TotalFacilities:    len(facilities),
		ActiveFacilities:   active,
		TotalTargets:       len(targets),
		TotalRegistrations: regCount,
		Operations:         computeRate(rows),
		Lag:                computeLag(rows),
		RecentOperations:   recent,
	}, nil
}

// computeLag summarizes lag over the SUCCESS rows of a terminal set.
func computeLag(rows []sync.OperationLog) LagStats {
	var lags []float64
	for _, row := range rows {
		if row.Status == sync.StatusSuccess {
			lags = append(lags, row.LagSeconds)
		}
	}
	if len(lags) == 0 {
		return LagStats{}
	}

	sort.Float64s(lags)
	sum := 0.0
	for _, lag := range lags {
		sum += lag
	}
	return LagStats{
		Min:         lags[0],
		Max:         lags[len(lags)-1],
		Mean:        sum / float64(len(lags)),
		P95:         percentile(lags, 0.95),
		SampleCount: len(lags),
	}
}

func computeRate(rows []sync.OperationLog) SuccessRate {
	rate := SuccessRate{}
	for _, row := range rows {
		switch row.Status {
		case sync.StatusSuccess:
			rate.Success++
		case sync.StatusFailed:
			rate.Failed++
		}
	}
	total := rate.Success + rate.Failed
	if total == 0 {
		rate.NoData = true
		return rate
	}
	rate.Rate = float64(rate.Success) / float64(total)
	return rate
}

// percentile uses the nearest-rank method on a sorted sample.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(p*float64(len(sorted)))) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}
