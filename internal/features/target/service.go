package target

import (
	"context"
	"fmt"

	"go-datasync/pkg/utils"
)

type TargetService interface {
	CreateTarget(ctx context.Context, t *SyncTarget) error
	GetTarget(ctx context.Context, id string) (*SyncTarget, error)
	ListTargets(ctx context.Context, filter ListFilter) ([]SyncTarget, error)
	UpdateTarget(ctx context.Context, id string, updates map[string]interface{}) error
	DeactivateTarget(ctx context.Context, id string) error
}

type TargetServiceImpl struct {
	Repo TargetRepository
}

func NewTargetService(repo TargetRepository) TargetService {
	return &TargetServiceImpl{Repo: repo}
}

func (s *TargetServiceImpl) CreateTarget(ctx context.Context, t *SyncTarget) error {
	if t.Name == "" {
		return fmt.Errorf("target name is required")
	}
	if !t.Kind.Valid() {
		return fmt.Errorf("invalid target type: %q", t.Kind)
	}
	if t.ID == "" {
		t.ID = utils.NewPrefixedID("TGT")
	}
	return s.Repo.Create(ctx, t)
}

func (s *TargetServiceImpl) GetTarget(ctx context.Context, id string) (*SyncTarget, error) {
	return s.Repo.Get(ctx, id)
}

func (s *TargetServiceImpl) ListTargets(ctx context.Context, filter ListFilter) ([]SyncTarget, error) {
	return s.Repo.List(ctx, filter)
}

func (s *TargetServiceImpl) UpdateTarget(ctx context.Context, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return fmt.Errorf("no fields to update")
	}
	if kind, ok := updates["kind"].(Kind); ok && !kind.Valid() {
		return fmt.Errorf("invalid target type: %q", kind)
	}
	delete(updates, "last_sync_time")
	return s.Repo.Update(ctx, id, updates)
}

func (s *TargetServiceImpl) DeactivateTarget(ctx context.Context, id string) error {
	return s.Repo.Deactivate(ctx, id)
}
