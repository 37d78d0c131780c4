package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go-datasync/internal/config"
	"go-datasync/pkg/utils"

	"go.uber.org/zap"
)

func newService(t *testing.T) (AuthService, *MemoryUserRepository) {
	t.Helper()
	repo := NewMemoryUserRepository()
	cfg := &config.Config{AdminUsername: "admin", AdminPassword: "changeme"}
	return NewAuthService(repo, cfg, zap.NewNop()), repo
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, repo := newService(t)

	u, err := svc.Register(context.Background(), "operator", "s3cret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !strings.HasPrefix(u.ID, "USR_") {
		t.Errorf("user id = %q, want USR_ prefix", u.ID)
	}

	stored, err := repo.FindByUsername(context.Background(), "operator")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if stored.PasswordHash == "s3cret" || stored.PasswordHash == "" {
		t.Error("password stored in the clear")
	}
}

func TestRegisterRejectsEmptyInput(t *testing.T) {
	svc, _ := newService(t)
	if _, err := svc.Register(context.Background(), "", "pw"); err == nil {
		t.Error("empty username accepted")
	}
	if _, err := svc.Register(context.Background(), "someone", ""); err == nil {
		t.Error("empty password accepted")
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newService(t)
	if _, err := svc.Register(context.Background(), "operator", "s3cret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, err := svc.Login(context.Background(), "operator", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := utils.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Username != "operator" {
		t.Errorf("token username = %q, want operator", claims.Username)
	}

	if _, err := svc.Login(context.Background(), "operator", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(context.Background(), "nobody", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v, want ErrInvalidCredentials", err)
	}
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	svc, _ := newService(t)

	if err := svc.EnsureAdmin(context.Background()); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	if err := svc.EnsureAdmin(context.Background()); err != nil {
		t.Fatalf("second EnsureAdmin: %v", err)
	}

	if _, err := svc.Login(context.Background(), "admin", "changeme"); err != nil {
		t.Errorf("admin login err = %v", err)
	}
}
