package repository

import (
	"context"
	"sync"

	"github.com/hilthontt/tripsync/internal/domain"
)

type UserRepository struct {
	users map[string]domain.User
	mu    sync.RWMutex
}

// NewUserRepository returns a store seeded with the given users, used with
// the memory driver where no account service is available.
func NewUserRepository(seed ...domain.User) *UserRepository {
	r := &UserRepository{users: make(map[string]domain.User, len(seed))}
	for _, u := range seed {
		r.users[u.ID] = u
	}
	return r
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

// Put adds or replaces a user.
func (r *UserRepository) Put(user domain.User) {
	r.mu.Lock()
	r.users[user.ID] = user
	r.mu.Unlock()
}
