package registration

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRegistrationRepository keeps registrations in process memory. It
// mirrors the Mongo repository and backs the service and orchestrator tests.
type MemoryRegistrationRepository struct {
	mu   sync.RWMutex
	regs []PatientRegistration
}

func NewMemoryRegistrationRepository() *MemoryRegistrationRepository {
	return &MemoryRegistrationRepository{}
}

func (r *MemoryRegistrationRepository) Create(ctx context.Context, reg *PatientRegistration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg.CreatedAt = time.Now()
	r.regs = append(r.regs, *reg)
	return nil
}

func (r *MemoryRegistrationRepository) List(ctx context.Context, canonicalDate string, limit int64) ([]PatientRegistration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []PatientRegistration
	for _, reg := range r.regs {
		if canonicalDate != "" && reg.CanonicalTime.Format("2006-01-02") != canonicalDate {
			continue
		}
		out = append(out, reg)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CanonicalTime.After(out[j].CanonicalTime)
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRegistrationRepository) ListSince(ctx context.Context, facilityID string, since time.Time) ([]PatientRegistration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []PatientRegistration
	for _, reg := range r.regs {
		if reg.FacilityID != facilityID || !reg.CanonicalTime.After(since) {
			continue
		}
		out = append(out, reg)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CanonicalTime.Before(out[j].CanonicalTime)
	})
	return out, nil
}

func (r *MemoryRegistrationRepository) CountByFacility(ctx context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, reg := range r.regs {
		counts[reg.FacilityID]++
	}
	return counts, nil
}

func (r *MemoryRegistrationRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.regs)), nil
}
