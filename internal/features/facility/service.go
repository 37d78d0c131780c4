package facility

import (
	"context"
	"fmt"

	"go-datasync/internal/timezone"
	"go-datasync/pkg/utils"
)

type FacilityService interface {
	CreateFacility(ctx context.Context, f *Facility) error
	GetFacility(ctx context.Context, id string) (*Facility, error)
	ListFacilities(ctx context.Context, filter ListFilter) ([]Facility, error)
	UpdateFacility(ctx context.Context, id string, updates map[string]interface{}) error
	DeactivateFacility(ctx context.Context, id string) error
	ListTimezones(ctx context.Context) ([]string, error)
	GlobalOptions() []GlobalOption
}

type FacilityServiceImpl struct {
	Repo FacilityRepository
}

func NewFacilityService(repo FacilityRepository) FacilityService {
	return &FacilityServiceImpl{Repo: repo}
}

// globalOptions are the predefined facility templates offered by the
// registration form.
var globalOptions = []GlobalOption{
	{ID: "GLOBAL_MUMBAI", Name: "Global India HQ (IST)", Data: Facility{Name: "Global India HQ", Timezone: "IST", Location: "India", IsActive: true}},
	{ID: "GLOBAL_NYC", Name: "Global New York Clinic (EST)", Data: Facility{Name: "Global New York Clinic", Timezone: "EST", Location: "USA", IsActive: true}},
	{ID: "GLOBAL_TOKYO", Name: "Global Tokyo Lab (JST)", Data: Facility{Name: "Global Tokyo Lab", Timezone: "JST", Location: "Japan", IsActive: true}},
	{ID: "GLOBAL_LONDON", Name: "Global London AI Hub (GMT)", Data: Facility{Name: "Global London AI Hub", Timezone: "GMT", Location: "UK", IsActive: true}},
}

func (s *FacilityServiceImpl) CreateFacility(ctx context.Context, f *Facility) error {
	// Unknown designators surface at creation, not at first sync.
	if _, err := timezone.OffsetFor(f.Timezone); err != nil {
		return err
	}
	if f.Name == "" {
		return fmt.Errorf("facility name is required")
	}
	if f.ID == "" {
		f.ID = utils.NewPrefixedID("FAC")
	}
	return s.Repo.Create(ctx, f)
}

func (s *FacilityServiceImpl) GetFacility(ctx context.Context, id string) (*Facility, error) {
	return s.Repo.Get(ctx, id)
}

func (s *FacilityServiceImpl) ListFacilities(ctx context.Context, filter ListFilter) ([]Facility, error) {
	return s.Repo.List(ctx, filter)
}

func (s *FacilityServiceImpl) UpdateFacility(ctx context.Context, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return fmt.Errorf("no fields to update")
	}
	if tz, ok := updates["timezone"].(string); ok {
		if _, err := timezone.OffsetFor(tz); err != nil {
			return err
		}
	}
	// The watermark belongs to the orchestrator; callers cannot set it here.
	delete(updates, "last_sync_time")
	return s.Repo.Update(ctx, id, updates)
}

func (s *FacilityServiceImpl) DeactivateFacility(ctx context.Context, id string) error {
	return s.Repo.Deactivate(ctx, id)
}

func (s *FacilityServiceImpl) ListTimezones(ctx context.Context) ([]string, error) {
	return s.Repo.DistinctTimezones(ctx)
}

func (s *FacilityServiceImpl) GlobalOptions() []GlobalOption {
	return globalOptions
}
