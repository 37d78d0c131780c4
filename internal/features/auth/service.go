package auth

import (
	"context"
	"errors"

	"go-datasync/internal/config"
	"go-datasync/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials hides whether the username or the password was
// wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	Register(ctx context.Context, username, password string) (*User, error)
	Login(ctx context.Context, username, password string) (string, error)
	// EnsureAdmin creates the configured admin account if it is missing.
	EnsureAdmin(ctx context.Context) error
}

type AuthServiceImpl struct {
	UserRepo UserRepository
	Config   *config.Config
	Logger   *zap.Logger
}

func NewAuthService(userRepo UserRepository, cfg *config.Config, logger *zap.Logger) AuthService {
	return &AuthServiceImpl{
		UserRepo: userRepo,
		Config:   cfg,
		Logger:   logger,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           utils.NewPrefixedID("USR"),
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.UserRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.UserRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateToken(u.ID, u.Username)
}

func (s *AuthServiceImpl) EnsureAdmin(ctx context.Context) error {
	if _, err := s.UserRepo.FindByUsername(ctx, s.Config.AdminUsername); err == nil {
		return nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	if _, err := s.Register(ctx, s.Config.AdminUsername, s.Config.AdminPassword); err != nil {
		return err
	}
	s.Logger.Info("seeded admin account", zap.String("username", s.Config.AdminUsername))
	return nil
}
