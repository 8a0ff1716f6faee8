package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fichador/fichador-backend/internal/domain/user"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[string]user.User // keyed by username
}

func NewUserRepository() user.UserRepository {
	return &userRepository{users: make(map[string]user.User)}
}

// Create implements user.UserRepository.
func (r *userRepository) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.Username]; ok {
		return user.ErrUsernameTaken
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.users[u.Username] = *u
	return nil
}

// GetByUsername implements user.UserRepository.
func (r *userRepository) GetByUsername(_ context.Context, username string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

// List implements user.UserRepository.
func (r *userRepository) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}
