package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-datasync/internal/config"
	"go-datasync/internal/features/facility"
	"go-datasync/internal/features/target"
	"go-datasync/internal/timezone"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SchedulerService periodically scans for facilities whose watermark has
// gone stale and fans a scheduled sync out to every active target.
type SchedulerService interface {
	InitializeScheduler(ctx context.Context) error
	StopScheduler() error
	RunScheduledSweep(ctx context.Context) error
}

type SchedulerServiceImpl struct {
	syncService  SyncService
	facilityRepo facility.FacilityRepository
	targetRepo   target.TargetRepository
	cfg          *config.Config
	logger       *zap.Logger

	scheduler *cron.Cron
	now       func() time.Time
}

func NewSchedulerService(
	syncService SyncService,
	facilityRepo facility.FacilityRepository,
	targetRepo target.TargetRepository,
	cfg *config.Config,
	logger *zap.Logger,
) SchedulerService {
	return &SchedulerServiceImpl{
		syncService:  syncService,
		facilityRepo: facilityRepo,
		targetRepo:   targetRepo,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *SchedulerServiceImpl) InitializeScheduler(ctx context.Context) error {
	s.logger.Info("initializing sync scheduler", zap.Duration("tick_interval", s.cfg.SyncTickInterval))
	s.scheduler = cron.New()

	spec := fmt.Sprintf("@every %s", s.cfg.SyncTickInterval)
	if _, err := s.scheduler.AddFunc(spec, func() {
		if err := s.RunScheduledSweep(context.Background()); err != nil {
			s.logger.Error("scheduled sweep failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("failed to register sync sweep: %w", err)
	}

	s.scheduler.Start()
	return nil
}

func (s *SchedulerServiceImpl) StopScheduler() error {
	if s.scheduler != nil {
		ctx := s.scheduler.Stop()
		<-ctx.Done()
	}
	return nil
}

// RunScheduledSweep triggers one sync per stale (facility, target) pair.
// Pairs already running are skipped, not queued; they will be picked up
// again on a later tick.
func (s *SchedulerServiceImpl) RunScheduledSweep(ctx context.Context) error {
	facilities, err := s.facilityRepo.List(ctx, facility.ListFilter{ActiveOnly: true})
	if err != nil {
		return fmt.Errorf("failed to list facilities: %w", err)
	}
	targets, err := s.targetRepo.List(ctx, target.ListFilter{ActiveOnly: true})
	if err != nil {
		return fmt.Errorf("failed to list targets: %w", err)
	}

	canonicalNow := timezone.ToCanonical(s.now().UTC())
	triggered := 0
	for i := range facilities {
		fac := &facilities[i]
		if !s.isStale(fac, canonicalNow) {
			continue
		}
		for j := range targets {
			_, err := s.syncService.TriggerSync(ctx, fac.ID, targets[j].ID, KindScheduled, "SCHEDULER")
			switch {
			case err == nil:
				triggered++
			case errors.Is(err, ErrSyncAlreadyInProgress):
				s.logger.Debug("skipping busy pair",
					zap.String("facility_id", fac.ID),
					zap.String("target_id", targets[j].ID),
				)
			default:
				s.logger.Error("failed to trigger scheduled sync",
					zap.String("facility_id", fac.ID),
					zap.String("target_id", targets[j].ID),
					zap.Error(err),
				)
			}
		}
	}

	if triggered > 0 {
		s.logger.Info("scheduled sweep complete", zap.Int("triggered", triggered))
	}
	return nil
}

// isStale compares the facility watermark against the canonical clock.
// A facility that has never synced is always due.
func (s *SchedulerServiceImpl) isStale(fac *facility.Facility, canonicalNow time.Time) bool {
	if fac.LastSyncTime == nil {
		return true
	}
	return canonicalNow.Sub(*fac.LastSyncTime) > s.cfg.SyncStaleAfter
}
