package users

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readypath/readypath/internal/shared"
)

type mockRepository struct {
	users map[uuid.UUID]*User
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[uuid.UUID]*User)}
}

func (m *mockRepository) Create(ctx context.Context, user User) (User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := user
	m.users[user.ID] = &stored
	return user, nil
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	user, ok := m.users[id]
	if !ok {
		return User{}, fmt.Errorf("%w: user %s", shared.ErrNotFound, id)
	}
	return *user, nil
}

func (m *mockRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return *user, nil
		}
	}
	return User{}, fmt.Errorf("%w: email %q", shared.ErrNotFound, email)
}

func (m *mockRepository) List(ctx context.Context, params shared.ListParams, activeOnly bool) ([]User, error) {
	out := []User{}
	for _, user := range m.users {
		if activeOnly && !user.IsActive {
			continue
		}
		out = append(out, *user)
	}
	return out, nil
}

func (m *mockRepository) UpdateProfile(ctx context.Context, id uuid.UUID, params UpdateProfileParams) (User, error) {
	user, ok := m.users[id]
	if !ok {
		return User{}, fmt.Errorf("%w: user %s", shared.ErrNotFound, id)
	}
	if params.FirstName != nil {
		user.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		user.LastName = *params.LastName
	}
	if params.Phone != nil {
		user.Phone = *params.Phone
	}
	if params.Bio != nil {
		user.Bio = *params.Bio
	}
	if params.ProfilePictureURL != nil {
		user.ProfilePictureURL = *params.ProfilePictureURL
	}
	if params.IsVerified != nil {
		user.IsVerified = *params.IsVerified
	}
	user.UpdatedAt = time.Now()
	return *user, nil
}

func (m *mockRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	user, ok := m.users[id]
	if !ok {
		return fmt.Errorf("%w: user %s", shared.ErrNotFound, id)
	}
	user.IsActive = active
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.users[id]; !ok {
		return fmt.Errorf("%w: user %s", shared.ErrNotFound, id)
	}
	delete(m.users, id)
	return nil
}

func TestCreateUserNormalizesEmail(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	user, err := svc.Create(context.Background(), "  Ada@Example.COM ", "hash", " Ada ", "Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada", user.FirstName)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, uuid.Nil, user.ID)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), "ada@example.com", "hash", "", "")
	require.NoError(t, err)

	// Same address in different case still collides.
	_, err = svc.Create(context.Background(), "ADA@EXAMPLE.COM", "hash", "", "")
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestCreateUserRejectsBadInput(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Create(context.Background(), "not-an-email", "hash", "", "")
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(context.Background(), "ada@example.com", "", "", "")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestDeactivateActivate(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	user, err := svc.Create(context.Background(), "ada@example.com", "hash", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), user.ID))
	got, err := svc.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	require.NoError(t, svc.Activate(context.Background(), user.ID))
	got, err = svc.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestUpdateProfilePartial(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	user, err := svc.Create(context.Background(), "ada@example.com", "hash", "Ada", "Lovelace")
	require.NoError(t, err)

	bio := "Mathematician"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileParams{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Mathematician", updated.Bio)
	assert.Equal(t, "Ada", updated.FirstName, "untouched fields survive")
}

func TestDeleteUser(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	user, err := svc.Create(context.Background(), "ada@example.com", "hash", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), user.ID))
	_, err = svc.Get(context.Background(), user.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), user.ID), shared.ErrNotFound)
}
