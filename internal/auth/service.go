package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/readypath/readypath/internal/shared"
	"github.com/readypath/readypath/internal/users"
)

// Service wraps authentication business rules.
type Service struct {
	users users.Repository
}

// NewService constructs a new Service.
func NewService(userRepo users.Repository) *Service {
	return &Service{users: userRepo}
}

// Authenticate validates email/password credentials. Every failure mode
// collapses into ErrInvalidCredentials so the response does not leak
// whether the account exists or is deactivated.
func (s *Service) Authenticate(ctx context.Context, email, password string) (users.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return users.User{}, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return users.User{}, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return users.User{}, shared.ErrInvalidCredentials
	}
	return user, nil
}
