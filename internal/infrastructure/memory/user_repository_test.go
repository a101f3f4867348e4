package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nareshkanna-nk/Young-wealth/internal/domain/entity"
	"github.com/nareshkanna-nk/Young-wealth/internal/domain/repository"
)

func TestUserRepositorySoftDeleteHidesUser(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", Email: "a@example.com", Role: entity.RoleEmployee, IsActive: true}))
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u2", Email: "b@example.com", Role: entity.RoleEmployee, IsActive: true}))

	require.NoError(t, repo.SoftDelete(ctx, "u1"))
	require.ErrorIs(t, repo.SoftDelete(ctx, "u1"), repository.ErrNotFound)

	_, err := repo.GetByID(ctx, "u1")
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetByEmail(ctx, "a@example.com")
	require.ErrorIs(t, err, repository.ErrNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "u2", list[0].ID)
}

func TestUserRepositoryEmailUniqueIncludingInactive(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", Email: "a@example.com", IsActive: true}))
	require.NoError(t, repo.SoftDelete(ctx, "u1"))

	err := repo.Create(ctx, &entity.User{ID: "u2", Email: "A@example.com", IsActive: true})
	require.ErrorIs(t, err, repository.ErrEmailExists)
}

func TestUserRepositoryUpdateRejectsTakenEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", Email: "a@example.com", IsActive: true}))
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u2", Email: "b@example.com", IsActive: true}))

	_, err := repo.Update(ctx, "u2", func(u *entity.User) error {
		u.Email = "a@example.com"
		return nil
	})
	require.ErrorIs(t, err, repository.ErrEmailExists)

	got, err := repo.Update(ctx, "u2", func(u *entity.User) error {
		u.FullName = "Bee"
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "Bee", got.FullName)
	require.Equal(t, "b@example.com", got.Email)
}

func TestUserRepositoryUpdateSkipsSoftDeleted(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", Email: "a@example.com", IsActive: true}))
	require.NoError(t, repo.SoftDelete(ctx, "u1"))

	called := false
	_, err := repo.Update(ctx, "u1", func(u *entity.User) error {
		called = true
		u.IsActive = true
		return nil
	})
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.False(t, called)

	_, err = repo.GetByID(ctx, "u1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepositoryUpdateApplyErrorLeavesRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", FullName: "Asha", Email: "a@example.com", IsActive: true}))

	boom := errors.New("boom")
	_, err := repo.Update(ctx, "u1", func(u *entity.User) error {
		u.FullName = "Changed"
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Asha", got.FullName)
}

func TestUserRepositoryConcurrentCreateSameEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u := &entity.User{ID: string(rune('a' + i)), Email: "same@example.com", IsActive: true}
			if err := repo.Create(ctx, u); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	require.Equal(t, 1, created)
}
