package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/nareshkanna-nk/Young-wealth/internal/domain/entity"
	"github.com/nareshkanna-nk/Young-wealth/internal/domain/repository"
)

// UserRepository keeps users in process memory, guarded by one RWMutex.
// Records are copied in and out so callers never mutate stored state directly.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*entity.User
	order []string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*entity.User)}
}

func (r *UserRepository) List(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.order))
	for _, id := range r.order {
		if u := r.users[id]; u.IsActive {
			out = append(out, u.Clone())
		}
	}
	return out, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok || !u.IsActive {
		return nil, repository.ErrNotFound
	}
	return u.Clone(), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		u := r.users[id]
		if u.IsActive && strings.EqualFold(u.Email, email) {
			return u.Clone(), nil
		}
	}
	return nil, repository.ErrNotFound
}

// Create rejects an email already held by any record, active or not.
func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTakenLocked(u.Email, "") {
		return repository.ErrEmailExists
	}
	r.users[u.ID] = u.Clone()
	r.order = append(r.order, u.ID)
	return nil
}

// Update runs apply on a copy of the active user. The copy is stored only when
// apply succeeds and the resulting email is not held by another record.
func (r *UserRepository) Update(_ context.Context, id string, apply func(*entity.User) error) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.users[id]
	if !ok || !cur.IsActive {
		return nil, repository.ErrNotFound
	}
	next := cur.Clone()
	if err := apply(next); err != nil {
		return nil, err
	}
	next.ID = id
	if r.emailTakenLocked(next.Email, id) {
		return nil, repository.ErrEmailExists
	}
	r.users[id] = next
	return next.Clone(), nil
}

func (r *UserRepository) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || !u.IsActive {
		return repository.ErrNotFound
	}
	u.IsActive = false
	return nil
}

func (r *UserRepository) emailTakenLocked(email, exceptID string) bool {
	for id, u := range r.users {
		if id != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

var _ repository.UserRepository = (*UserRepository)(nil)
