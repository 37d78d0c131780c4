package sync

import (
	"context"
	"fmt"
	"sort"
	stdsync "sync"
	"time"
)

// MemoryOperationLogRepository keeps operation rows in process memory. It
// mirrors the Mongo repository, including the rule that only a PENDING row
// can start running and only a RUNNING row can be finalized.
type MemoryOperationLogRepository struct {
	mu   stdsync.RWMutex
	logs map[string]*OperationLog
}

func NewMemoryOperationLogRepository() *MemoryOperationLogRepository {
	return &MemoryOperationLogRepository{
		logs: make(map[string]*OperationLog),
	}
}

func (r *MemoryOperationLogRepository) Create(ctx context.Context, log *OperationLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.logs[log.ID]; exists {
		return fmt.Errorf("duplicate log id %s", log.ID)
	}
	clone := *log
	r.logs[log.ID] = &clone
	return nil
}

func (r *MemoryOperationLogRepository) Get(ctx context.Context, id string) (*OperationLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	log, ok := r.logs[id]
	if !ok {
		return nil, ErrOperationNotFound
	}
	clone := *log
	return &clone, nil
}

func (r *MemoryOperationLogRepository) SetRunning(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	log, ok := r.logs[id]
	if !ok || log.Status != StatusPending {
		return ErrOperationNotFound
	}
	log.Status = StatusRunning
	log.StartedAt = at
	return nil
}

func (r *MemoryOperationLogRepository) Finalize(ctx context.Context, log *OperationLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.logs[log.ID]
	if !ok || existing.Status != StatusRunning {
		return ErrOperationNotFound
	}
	clone := *log
	r.logs[log.ID] = &clone
	return nil
}

func (r *MemoryOperationLogRepository) List(ctx context.Context, filter LogFilter) ([]OperationLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []OperationLog
	for _, log := range r.logs {
		if filter.FacilityID != "" && log.SourceFacilityID != filter.FacilityID {
			continue
		}
		if filter.TargetID != "" && log.TargetID != filter.TargetID {
			continue
		}
		if filter.Status != "" && log.Status != filter.Status {
			continue
		}
		if filter.Kind != "" && log.Kind != filter.Kind {
			continue
		}
		if !filter.From.IsZero() && log.StartedAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !log.StartedAt.Before(filter.To) {
			continue
		}
		out = append(out, *log)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if filter.Limit > 0 && int64(len(out)) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
