package target

import (
	"context"
	"sync"
	"time"
)

// MemoryTargetRepository keeps targets in process memory. It mirrors the
// Mongo repository and backs the service tests.
type MemoryTargetRepository struct {
	mu      sync.RWMutex
	targets map[string]*SyncTarget
	order   []string
}

func NewMemoryTargetRepository() *MemoryTargetRepository {
	return &MemoryTargetRepository{
		targets: make(map[string]*SyncTarget),
	}
}

func (r *MemoryTargetRepository) Create(ctx context.Context, t *SyncTarget) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	clone := *t
	r.targets[t.ID] = &clone
	r.order = append(r.order, t.ID)
	return nil
}

func (r *MemoryTargetRepository) Get(ctx context.Context, id string) (*SyncTarget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.targets[id]
	if !ok {
		return nil, ErrTargetNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *MemoryTargetRepository) List(ctx context.Context, filter ListFilter) ([]SyncTarget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []SyncTarget
	for _, id := range r.order {
		t := r.targets[id]
		if filter.ActiveOnly && !t.IsActive {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *MemoryTargetRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.targets[id]
	if !ok {
		return ErrTargetNotFound
	}
	for key, value := range updates {
		switch key {
		case "name":
			t.Name = value.(string)
		case "kind":
			t.Kind = value.(Kind)
		case "connection_string":
			t.ConnectionString = value.(string)
		case "is_active":
			t.IsActive = value.(bool)
		case "last_sync_time":
			ts := value.(time.Time)
			t.LastSyncTime = &ts
		}
	}
	t.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryTargetRepository) UpdateWatermark(ctx context.Context, id string, t time.Time) error {
	return r.Update(ctx, id, map[string]interface{}{"last_sync_time": t})
}

func (r *MemoryTargetRepository) Deactivate(ctx context.Context, id string) error {
	return r.Update(ctx, id, map[string]interface{}{"is_active": false})
}
