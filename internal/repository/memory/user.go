// Package memory provides thread-safe in-memory stores for tests and local runs.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/studentinfo-server/internal/model"
)

var _ model.UserStore = (*UserStore)(nil)

// UserStore keeps users in a map keyed by username.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]model.User
}

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]model.User)}
}

func (s *UserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (s *UserStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return model.User{}, model.ErrDuplicateUsername
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.users[user.Username] = user
	return user, nil
}

// SetDisabled flips the disabled flag of an existing user. It is the
// administrative hook behind the disabled check in service.Auth.Authenticate.
func (s *UserStore) SetDisabled(_ context.Context, username string, disabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return model.ErrNotFound
	}
	u.Disabled = disabled
	s.users[username] = u
	return nil
}
