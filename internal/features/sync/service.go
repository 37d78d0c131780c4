package sync

import (
	"context"
	"errors"
	"fmt"
	stdsync "sync"
	"time"

	"go-datasync/internal/config"
	"go-datasync/internal/features/facility"
	"go-datasync/internal/features/registration"
	"go-datasync/internal/features/target"
	"go-datasync/internal/timezone"
	"go-datasync/pkg/utils"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

var (
	// ErrFacilityInactive rejects triggers for deactivated facilities.
	ErrFacilityInactive = errors.New("facility is not active")
	// ErrTargetInactive rejects triggers for deactivated targets.
	ErrTargetInactive = errors.New("sync target is not active")
)

// SyncService runs sync operations between facilities and targets.
//
// A trigger is accepted synchronously (the first PENDING row is created and
// its id returned) and executed asynchronously. At most one operation runs
// per (facility, target) pair; a second trigger for a busy pair fails with
// ErrSyncAlreadyInProgress instead of queueing.
type SyncService interface {
	TriggerSync(ctx context.Context, facilityID, targetID string, kind OperationKind, actor string) (*TriggerResult, error)
	Cancel(ctx context.Context, logID string) error
	GetOperation(ctx context.Context, logID string) (*OperationLog, error)
	ListLogs(ctx context.Context, filter LogFilter) ([]OperationLog, error)
}

type attemptHandle struct {
	cancel    context.CancelFunc
	cancelled bool
}

type SyncServiceImpl struct {
	logRepo      OperationLogRepository
	facilityRepo facility.FacilityRepository
	targetRepo   target.TargetRepository
	regRepo      registration.RegistrationRepository
	pushers      PusherSet
	events       *Broadcaster
	cfg          *config.Config
	logger       *zap.Logger

	mu        stdsync.Mutex
	pairLocks map[string]*stdsync.Mutex
	running   map[string]*attemptHandle // keyed by log id

	wg  stdsync.WaitGroup
	now func() time.Time
}

func NewSyncService(
	logRepo OperationLogRepository,
	facilityRepo facility.FacilityRepository,
	targetRepo target.TargetRepository,
	regRepo registration.RegistrationRepository,
	pushers PusherSet,
	events *Broadcaster,
	cfg *config.Config,
	logger *zap.Logger,
) SyncService {
	return &SyncServiceImpl{
		logRepo:      logRepo,
		facilityRepo: facilityRepo,
		targetRepo:   targetRepo,
		regRepo:      regRepo,
		pushers:      pushers,
		events:       events,
		cfg:          cfg,
		logger:       logger,
		pairLocks:    make(map[string]*stdsync.Mutex),
		running:      make(map[string]*attemptHandle),
		now:          time.Now,
	}
}

// pairLock returns the mutex guarding one (facility, target) pair.
func (s *SyncServiceImpl) pairLock(facilityID, targetID string) *stdsync.Mutex {
	key := facilityID + "|" + targetID
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.pairLocks[key]
	if !ok {
		lock = &stdsync.Mutex{}
		s.pairLocks[key] = lock
	}
	return lock
}

func (s *SyncServiceImpl) TriggerSync(ctx context.Context, facilityID, targetID string, kind OperationKind, actor string) (*TriggerResult, error) {
	fac, err := s.facilityRepo.Get(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	if !fac.IsActive {
		return nil, ErrFacilityInactive
	}

	tgt, err := s.targetRepo.Get(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !tgt.IsActive {
		return nil, ErrTargetInactive
	}

	if _, err := s.pushers.For(tgt.Kind); err != nil {
		return nil, err
	}

	// The lock is held for the whole trigger, retries included, and
	// released by the worker goroutine.
	lock := s.pairLock(facilityID, targetID)
	if !lock.TryLock() {
		return nil, ErrSyncAlreadyInProgress
	}

	first := &OperationLog{
		ID:               utils.NewPrefixedID("LOG"),
		SourceFacilityID: facilityID,
		TargetID:         targetID,
		Kind:             kind,
		Attempt:          1,
		Status:           StatusPending,
		StartedAt:        s.now().UTC(),
		CreatedBy:        actor,
	}
	if err := s.logRepo.Create(ctx, first); err != nil {
		lock.Unlock()
		return nil, err
	}

	s.logger.Info("sync triggered",
		zap.String("log_id", first.ID),
		zap.String("facility_id", facilityID),
		zap.String("target_id", targetID),
		zap.String("operation_type", string(kind)),
		zap.String("created_by", actor),
	)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer lock.Unlock()
		s.run(fac, tgt, first)
	}()

	return &TriggerResult{LogID: first.ID, Status: StatusPending}, nil
}

// run executes one trigger: the pre-created first attempt plus retries for
// transient failures, each retry as a fresh log row.
func (s *SyncServiceImpl) run(fac *facility.Facility, tgt *target.SyncTarget, first *OperationLog) {
	tries := 0
	operation := func() (*OperationLog, error) {
		tries++
		row := first
		if tries > 1 {
			row = &OperationLog{
				ID:               utils.NewPrefixedID("LOG"),
				SourceFacilityID: first.SourceFacilityID,
				TargetID:         first.TargetID,
				Kind:             first.Kind,
				Attempt:          tries,
				Status:           StatusPending,
				StartedAt:        s.now().UTC(),
				CreatedBy:        first.CreatedBy,
			}
			if err := s.logRepo.Create(context.Background(), row); err != nil {
				return nil, backoff.Permanent(err)
			}
		}

		done, err := s.attempt(fac, tgt, row)
		if err != nil {
			if !IsTransient(err) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return done, nil
	}

	maxTries := s.cfg.SyncMaxAttempts
	if maxTries < 1 {
		maxTries = 1
	}
	_, err := backoff.Retry(context.Background(), operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(uint(maxTries)),
	)
	if err != nil {
		s.logger.Warn("sync trigger exhausted",
			zap.String("facility_id", fac.ID),
			zap.String("target_id", tgt.ID),
			zap.Int("attempts", tries),
			zap.Error(err),
		)
	}
}

// attempt runs a single operation row to a terminal state and returns the
// finalized row. The returned error, if any, is the classified failure
// that drives the retry decision.
func (s *SyncServiceImpl) attempt(fac *facility.Facility, tgt *target.SyncTarget, row *OperationLog) (*OperationLog, error) {
	startedAt := s.now().UTC()
	if err := s.logRepo.SetRunning(context.Background(), row.ID, startedAt); err != nil {
		return nil, backoff.Permanent(err)
	}
	row.Status = StatusRunning
	row.StartedAt = startedAt
	s.publish(row)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.SyncAttemptTimeout)
	handle := &attemptHandle{cancel: cancel}
	s.mu.Lock()
	s.running[row.ID] = handle
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.running, row.ID)
		s.mu.Unlock()
		cancel()
	}()

	count, maxSource, err := s.push(ctx, fac, tgt)
	err = s.classify(err, handle)

	completedAt := s.now().UTC()
	row.CompletedAt = &completedAt
	row.DurationSeconds = completedAt.Sub(startedAt).Seconds()
	row.RecordCount = count

	if err != nil {
		row.Status = StatusFailed
		row.ErrorMessage = err.Error()
		if ferr := s.logRepo.Finalize(context.Background(), row); ferr != nil {
			s.logger.Error("failed to finalize operation", zap.String("log_id", row.ID), zap.Error(ferr))
		}
		s.publish(row)
		s.logger.Warn("sync attempt failed",
			zap.String("log_id", row.ID),
			zap.Int("attempt", row.Attempt),
			zap.Bool("transient", IsTransient(err)),
			zap.Error(err),
		)
		return nil, err
	}

	if !maxSource.IsZero() {
		row.LagSeconds = completedAt.Sub(maxSource).Seconds()
	}
	row.Status = StatusSuccess
	if ferr := s.logRepo.Finalize(context.Background(), row); ferr != nil {
		s.logger.Error("failed to finalize operation", zap.String("log_id", row.ID), zap.Error(ferr))
	}

	// The watermark moves only on success, and on the canonical clock so
	// the next incremental window is comparable to canonical_time.
	canonicalDone := timezone.ToCanonical(completedAt)
	if werr := s.facilityRepo.UpdateWatermark(context.Background(), fac.ID, canonicalDone); werr != nil {
		s.logger.Error("failed to advance facility watermark", zap.String("facility_id", fac.ID), zap.Error(werr))
	}
	if werr := s.targetRepo.UpdateWatermark(context.Background(), tgt.ID, canonicalDone); werr != nil {
		s.logger.Error("failed to advance target watermark", zap.String("target_id", tgt.ID), zap.Error(werr))
	}

	s.publish(row)
	s.logger.Info("sync attempt succeeded",
		zap.String("log_id", row.ID),
		zap.Int("attempt", row.Attempt),
		zap.Int("record_count", count),
		zap.Float64("lag_seconds", row.LagSeconds),
	)
	return row, nil
}

// push loads the facility's backlog past its watermark and transfers it.
// It returns the record count and the newest source instant included.
func (s *SyncServiceImpl) push(ctx context.Context, fac *facility.Facility, tgt *target.SyncTarget) (int, time.Time, error) {
	var watermark time.Time
	if fac.LastSyncTime != nil {
		watermark = *fac.LastSyncTime
	}

	records, err := s.regRepo.ListSince(ctx, fac.ID, watermark)
	if err != nil {
		return 0, time.Time{}, err
	}

	var maxSource time.Time
	for _, rec := range records {
		if rec.SourceUTC.After(maxSource) {
			maxSource = rec.SourceUTC
		}
	}

	pusher, err := s.pushers.For(tgt.Kind)
	if err != nil {
		return 0, time.Time{}, err
	}
	count, err := pusher.Push(ctx, tgt, records)
	if err != nil {
		return count, time.Time{}, err
	}
	return count, maxSource, nil
}

// classify maps raw attempt errors onto the retry taxonomy. A context
// cancelled by an explicit Cancel call becomes ErrCancelled (fatal);
// deadline expiry stays transient.
func (s *SyncServiceImpl) classify(err error, handle *attemptHandle) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		s.mu.Lock()
		cancelled := handle.cancelled
		s.mu.Unlock()
		if cancelled {
			return ErrCancelled
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Transient(fmt.Errorf("attempt exceeded %s: %w", s.cfg.SyncAttemptTimeout, err))
	}
	return err
}

func (s *SyncServiceImpl) Cancel(ctx context.Context, logID string) error {
	s.mu.Lock()
	handle, ok := s.running[logID]
	if ok {
		handle.cancelled = true
		handle.cancel()
	}
	s.mu.Unlock()
	if ok {
		return nil
	}

	log, err := s.logRepo.Get(ctx, logID)
	if err != nil {
		return err
	}
	return fmt.Errorf("operation %s is not running (status %s)", logID, log.Status)
}

func (s *SyncServiceImpl) GetOperation(ctx context.Context, logID string) (*OperationLog, error) {
	return s.logRepo.Get(ctx, logID)
}

func (s *SyncServiceImpl) ListLogs(ctx context.Context, filter LogFilter) ([]OperationLog, error) {
	return s.logRepo.List(ctx, filter)
}

func (s *SyncServiceImpl) publish(row *OperationLog) {
	s.events.Publish(Event{
		Type:        "sync_status",
		LogID:       row.ID,
		FacilityID:  row.SourceFacilityID,
		TargetID:    row.TargetID,
		Status:      row.Status,
		RecordCount: row.RecordCount,
		Timestamp:   s.now().UTC(),
	})
}
