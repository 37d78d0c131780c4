package target

import (
	"context"
	"strings"
	"testing"
)

func TestCreateTargetValidatesKind(t *testing.T) {
	svc := NewTargetService(NewMemoryTargetRepository())
	ctx := context.Background()

	err := svc.CreateTarget(ctx, &SyncTarget{Name: "Snowflake", Kind: "lake", IsActive: true})
	if err == nil {
		t.Fatal("CreateTarget accepted an invalid kind")
	}

	tgt := &SyncTarget{Name: "Snowflake", Kind: KindWarehouse, ConnectionString: "postgres://...", IsActive: true}
	if err := svc.CreateTarget(ctx, tgt); err != nil {
		t.Fatalf("CreateTarget: %v", err)
	}
	if !strings.HasPrefix(tgt.ID, "TGT_") {
		t.Errorf("generated id %q missing TGT_ prefix", tgt.ID)
	}
}

func TestDeactivateKeepsTarget(t *testing.T) {
	svc := NewTargetService(NewMemoryTargetRepository())
	ctx := context.Background()

	tgt := &SyncTarget{Name: "Archive", Kind: KindObjectStore, IsActive: true}
	if err := svc.CreateTarget(ctx, tgt); err != nil {
		t.Fatalf("CreateTarget: %v", err)
	}
	if err := svc.DeactivateTarget(ctx, tgt.ID); err != nil {
		t.Fatalf("DeactivateTarget: %v", err)
	}

	got, err := svc.GetTarget(ctx, tgt.ID)
	if err != nil {
		t.Fatalf("GetTarget: %v", err)
	}
	if got.IsActive {
		t.Error("target still active after deactivation")
	}

	active, err := svc.ListTargets(ctx, ListFilter{ActiveOnly: true})
	if err != nil {
		t.Fatalf("ListTargets: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active listing returned %d targets, want 0", len(active))
	}
}
