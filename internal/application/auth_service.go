package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nareshkanna-nk/Young-wealth/internal/domain/entity"
)

type AuthService struct {
	Users  *UserService
	Logger *logrus.Logger
}

func NewAuthService(users *UserService, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Logger: logger}
}

// Authenticate validates email/password against active users and returns the user.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !s.Users.VerifyPassword(u, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Authorize is Authenticate plus the admin role check.
func (s *AuthService) Authorize(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if u.Role != entity.RoleAdmin {
		return nil, ErrNotAdmin
	}
	return u, nil
}

// Login admits admins only; any other account gets the same answer as a bad password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Authorize(ctx, email, password)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Info("admin login rejected")
		}
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
