package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/readypath/readypath/internal/shared"
)

var emailFolder = cases.Fold()

// UpdateProfileParams enumerates the mutable profile fields. Nil pointers
// leave the column untouched.
type UpdateProfileParams struct {
	FirstName         *string
	LastName          *string
	Phone             *string
	Bio               *string
	ProfilePictureURL *string
	IsVerified        *bool
}

// Service handles user account business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new user. Duplicate emails (case-insensitive) fail with
// a conflict error.
func (s *Service) Create(ctx context.Context, email, hashedPassword, firstName, lastName string) (User, error) {
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return User{}, fmt.Errorf("%w: invalid email", shared.ErrValidation)
	}
	if hashedPassword == "" {
		return User{}, fmt.Errorf("%w: password hash required", shared.ErrValidation)
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, fmt.Errorf("%w: email %q already registered", shared.ErrConflict, email)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return User{}, err
	}

	user := User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: hashedPassword,
		FirstName:      strings.TrimSpace(firstName),
		LastName:       strings.TrimSpace(lastName),
		IsActive:       true,
	}
	return s.repo.Create(ctx, user)
}

// Get fetches a user by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail fetches a user by email, case-insensitively.
func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.GetByEmail(ctx, NormalizeEmail(email))
}

// List returns users ordered by creation time, newest first.
func (s *Service) List(ctx context.Context, skip, limit int, activeOnly bool) ([]User, error) {
	return s.repo.List(ctx, shared.NormalizeListParams(skip, limit), activeOnly)
}

// UpdateProfile patches the enumerated profile fields.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, params UpdateProfileParams) (User, error) {
	return s.repo.UpdateProfile(ctx, id, params)
}

// Deactivate soft-disables the account without removing it.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, false)
}

// Activate re-enables a soft-disabled account.
func (s *Service) Activate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, true)
}

// Delete hard-deletes the user. Assignments, resumes and scores cascade at
// the storage layer.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// NormalizeEmail trims and case-folds an email address so comparisons match
// the store's case-insensitive unique index.
func NormalizeEmail(email string) string {
	return emailFolder.String(strings.TrimSpace(email))
}
