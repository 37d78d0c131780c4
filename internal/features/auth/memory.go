package auth

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryUserRepository keeps users in process memory for tests.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]User // keyed by username
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[string]User),
	}
}

func (r *MemoryUserRepository) Create(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[u.Username]; exists {
		return fmt.Errorf("username %s already taken", u.Username)
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users[u.Username] = *u
	return nil
}

func (r *MemoryUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}
