package repository

import (
	"context"

	"github.com/nareshkanna-nk/Young-wealth/internal/domain/entity"
)

// UserRepository defines the interface for user persistence.
// Lookups only see active users; Create checks email uniqueness across all records.
// Update applies changes to the current active record under its lock.
type UserRepository interface {
	List(ctx context.Context) ([]*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, id string, apply func(*entity.User) error) (*entity.User, error)
	SoftDelete(ctx context.Context, id string) error
}
