package facility

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryFacilityRepository keeps facilities in process memory. It mirrors
// the Mongo repository and backs the service tests.
type MemoryFacilityRepository struct {
	mu         sync.RWMutex
	facilities map[string]*Facility
	order      []string
}

func NewMemoryFacilityRepository() *MemoryFacilityRepository {
	return &MemoryFacilityRepository{
		facilities: make(map[string]*Facility),
	}
}

func (r *MemoryFacilityRepository) Create(ctx context.Context, f *Facility) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	f.CreatedAt = now
	f.UpdatedAt = now

	clone := *f
	r.facilities[f.ID] = &clone
	r.order = append(r.order, f.ID)
	return nil
}

func (r *MemoryFacilityRepository) Get(ctx context.Context, id string) (*Facility, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.facilities[id]
	if !ok {
		return nil, ErrFacilityNotFound
	}
	clone := *f
	return &clone, nil
}

func (r *MemoryFacilityRepository) List(ctx context.Context, filter ListFilter) ([]Facility, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Facility
	for _, id := range r.order {
		f := r.facilities[id]
		if filter.ActiveOnly && !f.IsActive {
			continue
		}
		if filter.Timezone != "" && f.Timezone != filter.Timezone {
			continue
		}
		out = append(out, *f)
	}
	return out, nil
}

func (r *MemoryFacilityRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.facilities[id]
	if !ok {
		return ErrFacilityNotFound
	}
	for key, value := range updates {
		switch key {
		case "name":
			f.Name = value.(string)
		case "timezone":
			f.Timezone = value.(string)
		case "location":
			f.Location = value.(string)
		case "is_active":
			f.IsActive = value.(bool)
		case "last_sync_time":
			t := value.(time.Time)
			f.LastSyncTime = &t
		}
	}
	f.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryFacilityRepository) UpdateWatermark(ctx context.Context, id string, t time.Time) error {
	return r.Update(ctx, id, map[string]interface{}{"last_sync_time": t})
}

func (r *MemoryFacilityRepository) Deactivate(ctx context.Context, id string) error {
	return r.Update(ctx, id, map[string]interface{}{"is_active": false})
}

func (r *MemoryFacilityRepository) DistinctTimezones(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	for _, f := range r.facilities {
		seen[f.Timezone] = true
	}
	timezones := make([]string, 0, len(seen))
	for tz := range seen {
		timezones = append(timezones, tz)
	}
	sort.Strings(timezones)
	return timezones, nil
}
