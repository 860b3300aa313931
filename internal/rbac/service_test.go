package rbac

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readypath/readypath/internal/roles"
	"github.com/readypath/readypath/internal/shared"
)

type mockRepository struct {
	users       map[uuid.UUID]bool
	roles       map[int64]*roles.Role
	assignments map[int64]*Assignment
	nextID      int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:       make(map[uuid.UUID]bool),
		roles:       make(map[int64]*roles.Role),
		assignments: make(map[int64]*Assignment),
		nextID:      1,
	}
}

func (m *mockRepository) addUser() uuid.UUID {
	id := uuid.New()
	m.users[id] = true
	return id
}

func (m *mockRepository) addRole(name string, active bool, perms ...string) *roles.Role {
	role := &roles.Role{ID: int64(len(m.roles) + 1), Name: name, IsActive: active}
	role.SetPermissionsList(perms)
	m.roles[role.ID] = role
	return role
}

func (m *mockRepository) CreateAssignment(ctx context.Context, userID uuid.UUID, roleID int64, assignedBy *uuid.UUID) (Assignment, error) {
	if !m.users[userID] {
		return Assignment{}, fmt.Errorf("%w: user %s", shared.ErrNotFound, userID)
	}
	if _, ok := m.roles[roleID]; !ok {
		return Assignment{}, fmt.Errorf("%w: role %d", shared.ErrNotFound, roleID)
	}
	// Same arbitration the partial unique index performs.
	for _, a := range m.assignments {
		if a.UserID == userID && a.RoleID == roleID && a.IsActive {
			return Assignment{}, fmt.Errorf("%w: user already holds this role", shared.ErrConflict)
		}
	}
	a := &Assignment{
		ID:         m.nextID,
		UserID:     userID,
		RoleID:     roleID,
		AssignedBy: assignedBy,
		IsActive:   true,
		AssignedAt: time.Now(),
	}
	m.nextID++
	m.assignments[a.ID] = a
	return *a, nil
}

func (m *mockRepository) GetAssignment(ctx context.Context, id int64) (Assignment, error) {
	a, ok := m.assignments[id]
	if !ok {
		return Assignment{}, fmt.Errorf("%w: assignment %d", shared.ErrNotFound, id)
	}
	return *a, nil
}

func (m *mockRepository) SetAssignmentActive(ctx context.Context, id int64, active bool) error {
	a, ok := m.assignments[id]
	if !ok {
		return fmt.Errorf("%w: assignment %d", shared.ErrNotFound, id)
	}
	a.IsActive = active
	return nil
}

func (m *mockRepository) DeleteAssignment(ctx context.Context, id int64) error {
	if _, ok := m.assignments[id]; !ok {
		return fmt.Errorf("%w: assignment %d", shared.ErrNotFound, id)
	}
	delete(m.assignments, id)
	return nil
}

func (m *mockRepository) AssignmentsForUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]Assignment, error) {
	out := []Assignment{}
	for _, a := range m.assignments {
		if a.UserID != userID {
			continue
		}
		if activeOnly && !a.IsActive {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (m *mockRepository) RolesForUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]roles.Role, error) {
	out := []roles.Role{}
	for _, a := range m.assignments {
		if a.UserID != userID {
			continue
		}
		if activeOnly && !a.IsActive {
			continue
		}
		if role, ok := m.roles[a.RoleID]; ok {
			out = append(out, *role)
		}
	}
	return out, nil
}

func (m *mockRepository) EffectiveRolesForUser(ctx context.Context, userID uuid.UUID) ([]roles.Role, error) {
	out := []roles.Role{}
	for _, a := range m.assignments {
		if a.UserID != userID || !a.IsActive {
			continue
		}
		if role, ok := m.roles[a.RoleID]; ok && role.IsActive {
			out = append(out, *role)
		}
	}
	return out, nil
}

func TestAssignDuplicateActiveConflicts(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	userID := repo.addUser()
	role := repo.addRole("editor", true, "content:read")

	first, err := svc.Assign(context.Background(), userID, role.ID, nil)
	require.NoError(t, err)
	assert.True(t, first.IsActive)

	_, err = svc.Assign(context.Background(), userID, role.ID, nil)
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestAssignUnknownParents(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	userID := repo.addUser()
	role := repo.addRole("editor", true)

	_, err := svc.Assign(context.Background(), uuid.New(), role.ID, nil)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.Assign(context.Background(), userID, 999, nil)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRevokeThenReassign(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	userID := repo.addUser()
	role := repo.addRole("editor", true)

	first, err := svc.Assign(context.Background(), userID, role.ID, nil)
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(context.Background(), first.ID))

	second, err := svc.Assign(context.Background(), userID, role.ID, nil)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID, "re-grant creates a new row")

	history, err := svc.AssignmentsForUser(context.Background(), userID, false)
	require.NoError(t, err)
	assert.Len(t, history, 2, "revoked grant stays in the history")
}

func TestRevokeIsIdempotent(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	userID := repo.addUser()
	role := repo.addRole("editor", true)

	a, err := svc.Assign(context.Background(), userID, role.ID, nil)
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(context.Background(), a.ID))
	assert.NoError(t, svc.Revoke(context.Background(), a.ID))
}

func TestHasRoleRequiresBothActive(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	userID := repo.addUser()
	role := repo.addRole("editor", true)

	a, err := svc.Assign(context.Background(), userID, role.ID, nil)
	require.NoError(t, err)

	has, err := svc.HasRole(context.Background(), userID, "Editor")
	require.NoError(t, err)
	assert.True(t, has, "name check is case-insensitive")

	// Disabling the role hides it even though the assignment stays active.
	role.IsActive = false
	has, err = svc.HasRole(context.Background(), userID, "editor")
	require.NoError(t, err)
	assert.False(t, has)

	role.IsActive = true
	require.NoError(t, svc.Revoke(context.Background(), a.ID))
	has, err = svc.HasRole(context.Background(), userID, "editor")
	require.NoError(t, err)
	assert.False(t, has, "revoked assignment grants nothing")
}

func TestIsAdmin(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	userID := repo.addUser()
	admin := repo.addRole("admin", true, "*")

	ok, err := svc.IsAdmin(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Assign(context.Background(), userID, admin.ID, nil)
	require.NoError(t, err)

	ok, err = svc.IsAdmin(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEffectivePermissionsUnion(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	userID := repo.addUser()
	editor := repo.addRole("editor", true, "content:read", "content:write")
	viewer := repo.addRole("viewer", true, "content:read", "report:read")
	legacy := repo.addRole("legacy", false, "secret:read")

	for _, role := range []*roles.Role{editor, viewer, legacy} {
		_, err := svc.Assign(context.Background(), userID, role.ID, nil)
		require.NoError(t, err)
	}

	granted, err := svc.EffectivePermissions(context.Background(), userID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"content:read", "content:write", "report:read"}, granted)
	assert.NotContains(t, granted, "secret:read", "inactive role contributes nothing")
}
