package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hiteshgarg/medium-blog/internal/domain/user"
)

type UsersRepo struct {
	mu      sync.RWMutex
	byEmail map[string]user.User
	byID    map[string]user.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		byEmail: make(map[string]user.User),
		byID:    make(map[string]user.User),
	}
}

func (r *UsersRepo) Create(ctx context.Context, email, passwordHash, name string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; exists {
		return user.User{}, user.ErrEmailTaken
	}

	u := user.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    time.Now().UTC(),
	}

	r.byEmail[email] = u
	r.byID[u.ID] = u

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

func (r *UsersRepo) nameByID(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.byID[id].Name
}
