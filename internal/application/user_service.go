package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nareshkanna-nk/Young-wealth/internal/domain/entity"
	repo "github.com/nareshkanna-nk/Young-wealth/internal/domain/repository"
	"github.com/nareshkanna-nk/Young-wealth/pkg/helpers"
)

// Notifier is told about account lifecycle events, typically to queue an email.
type Notifier interface {
	UserCreated(ctx context.Context, u *entity.User) error
	UserDeactivated(ctx context.Context, u *entity.User) error
}

type UserService struct {
	Repo     repo.UserRepository
	Notifier Notifier
	Logger   *logrus.Logger
	Now      func() time.Time
}

func NewUserService(r repo.UserRepository, n Notifier, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, Notifier: n, Logger: logger}
}

func (s *UserService) now() time.Time { return clock(s.Now).now() }

// List returns active users only.
func (s *UserService) List(ctx context.Context) ([]*entity.User, error) {
	return s.Repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, userErr(err)
	}
	return u, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, userErr(err)
	}
	return u, nil
}

// Create validates the input, hashes the password and stores a new active user.
// An email held by any existing record, active or not, is a conflict.
func (s *UserService) Create(ctx context.Context, in Fields) (*entity.User, error) {
	ch, err := ValidateUserCreate(in)
	if err != nil {
		return nil, err
	}
	hash, err := helpers.HashPassword(*ch.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	u := &entity.User{
		ID:        uuid.NewString(),
		FullName:  *ch.FullName,
		Email:     *ch.Email,
		Password:  hash,
		Role:      *ch.Role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if ch.IsActive != nil {
		u.IsActive = *ch.IsActive
	}
	setSchoolType(u, ch.SchoolType)
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, userErr(err)
	}
	if s.Notifier != nil {
		s.warnNotify(u, s.Notifier.UserCreated(ctx, u))
	}
	return u, nil
}

// Update merges the provided fields. A new password is re-hashed before the
// repository lock is taken; the merge itself runs against the current record.
func (s *UserService) Update(ctx context.Context, id string, in Fields) (*entity.User, error) {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return nil, userErr(err)
	}
	ch, err := ValidateUserUpdate(in)
	if err != nil {
		return nil, err
	}
	var hash string
	if ch.Password != nil {
		if hash, err = helpers.HashPassword(*ch.Password); err != nil {
			return nil, err
		}
	}

	now := s.now()
	u, err := s.Repo.Update(ctx, id, func(u *entity.User) error {
		if hash != "" {
			u.Password = hash
		}
		if ch.FullName != nil {
			u.FullName = *ch.FullName
		}
		if ch.Email != nil {
			u.Email = *ch.Email
		}
		if ch.Role != nil {
			u.Role = *ch.Role
		}
		if ch.IsActive != nil {
			u.IsActive = *ch.IsActive
		}
		if ch.SchoolType != nil || ch.Role != nil {
			setSchoolType(u, ch.SchoolType)
		}
		u.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, userErr(err)
	}
	return u, nil
}

// Delete soft deletes the user; the record stays in storage with IsActive=false.
func (s *UserService) Delete(ctx context.Context, id string) error {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return userErr(err)
	}
	if err := s.Repo.SoftDelete(ctx, id); err != nil {
		return userErr(err)
	}
	u.IsActive = false
	if s.Notifier != nil {
		s.warnNotify(u, s.Notifier.UserDeactivated(ctx, u))
	}
	return nil
}

// VerifyPassword compares a plaintext candidate against the stored hash.
func (s *UserService) VerifyPassword(u *entity.User, plain string) bool {
	return helpers.CompareHashAndPassword(u.Password, plain)
}

// EnsureAdmin creates the bootstrap admin account unless a user with that email exists.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password, name string) (*entity.User, bool, error) {
	if u, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return u, false, nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, false, err
	}
	u, err := s.Create(ctx, Fields{
		"fullName": name,
		"email":    email,
		"password": password,
		"role":     string(entity.RoleAdmin),
	})
	if errors.Is(err, ErrEmailTaken) {
		// present but inactive
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

// warnNotify logs a failed notification; notifications never fail the request.
func (s *UserService) warnNotify(u *entity.User, err error) {
	if err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("user notification failed")
	}
}

// setSchoolType keeps schoolType only for school students.
func setSchoolType(u *entity.User, st *string) {
	if u.Role != entity.RoleSchoolStudent {
		u.SchoolType = nil
		return
	}
	if st == nil {
		return
	}
	if *st == "" {
		u.SchoolType = nil
		return
	}
	v := entity.SchoolType(*st)
	u.SchoolType = &v
}

func userErr(err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return ErrUserNotFound
	case errors.Is(err, repo.ErrEmailExists):
		return ErrEmailTaken
	default:
		return err
	}
}
