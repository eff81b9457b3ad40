// internal/infrastructure/database/memory/user_store.go

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/your-org/storefront-backend/internal/domain/user"
)

// UserStore implements user.Store with a map keyed by account.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*user.User
}

// NewUserStore creates an empty in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*user.User)}
}

func (s *UserStore) FindByAccount(_ context.Context, account string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[account]; ok {
		c := *u
		return &c, nil
	}
	return nil, user.ErrNotFound
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *UserStore) FindByPhone(_ context.Context, phone string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Phone == phone {
			c := *u
			return &c, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *UserStore) Insert(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Account]; ok {
		return user.ErrAccountExists
	}
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return user.ErrEmailExists
		}
	}
	c := *u
	s.users[u.Account] = &c
	return nil
}

func (s *UserStore) List(_ context.Context) ([]user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]user.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Account < out[j].Account })
	return out, nil
}

func (s *UserStore) Update(_ context.Context, account string, upd user.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[account]
	if !ok {
		return user.ErrNotFound
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Level != nil {
		u.Level = *upd.Level
	}
	return nil
}

func (s *UserStore) Delete(_ context.Context, account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[account]; !ok {
		return user.ErrNotFound
	}
	delete(s.users, account)
	return nil
}
