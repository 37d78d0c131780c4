package registration

import (
	"context"
	"fmt"

	"go-datasync/internal/features/facility"
	"go-datasync/internal/timezone"
	"go-datasync/pkg/utils"
)

type RegistrationService interface {
	Register(ctx context.Context, input RegisterInput) (*PatientRegistration, error)
	ListRegistrations(ctx context.Context, canonicalDate string) ([]PatientRegistration, error)
}

type RegistrationServiceImpl struct {
	Repo         RegistrationRepository
	FacilityRepo facility.FacilityRepository
}

func NewRegistrationService(repo RegistrationRepository, facilityRepo facility.FacilityRepository) RegistrationService {
	return &RegistrationServiceImpl{
		Repo:         repo,
		FacilityRepo: facilityRepo,
	}
}

// Register validates, normalizes and persists one registration event.
// Validation failures (unknown facility, unknown designator, unparseable
// timestamp) reject the event before anything is written.
func (s *RegistrationServiceImpl) Register(ctx context.Context, input RegisterInput) (*PatientRegistration, error) {
	if input.FullName == "" {
		return nil, fmt.Errorf("full_name is required")
	}

	if _, err := s.FacilityRepo.Get(ctx, input.FacilityID); err != nil {
		return nil, err
	}

	normalized, err := timezone.Normalize(input.LocalTime, input.Timezone)
	if err != nil {
		return nil, err
	}

	reg := &PatientRegistration{
		PatientID:      utils.NewPrefixedID("PAT"),
		RegistrationID: utils.NewPrefixedID("REG"),
		FullName:       input.FullName,
		DateOfBirth:    input.DateOfBirth,
		ContactNumber:  input.ContactNumber,
		Email:          input.Email,
		FacilityID:     input.FacilityID,
		Timezone:       input.Timezone,
		LocalTime:      input.LocalTime,
		CanonicalTime:  normalized.Canonical,
		SourceUTC:      normalized.SourceUTC,
	}

	if err := s.Repo.Create(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *RegistrationServiceImpl) ListRegistrations(ctx context.Context, canonicalDate string) ([]PatientRegistration, error) {
	return s.Repo.List(ctx, canonicalDate, 100)
}
