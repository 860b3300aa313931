package rbac

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/readypath/readypath/internal/roles"
	"github.com/readypath/readypath/internal/shared"
)

// Service handles user-role assignment logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Assign grants a role to a user. A second active grant of the same role
// fails with a conflict; a revoked grant may be re-granted as a new row.
func (s *Service) Assign(ctx context.Context, userID uuid.UUID, roleID int64, assignedBy *uuid.UUID) (Assignment, error) {
	if userID == uuid.Nil {
		return Assignment{}, fmt.Errorf("%w: user ID required", shared.ErrValidation)
	}
	if roleID <= 0 {
		return Assignment{}, fmt.Errorf("%w: invalid role ID", shared.ErrValidation)
	}
	assignment, err := s.repo.CreateAssignment(ctx, userID, roleID, assignedBy)
	if err != nil {
		return Assignment{}, err
	}
	if s.logger != nil {
		s.logger.Info("role assigned",
			slog.String("user_id", userID.String()),
			slog.Int64("role_id", roleID),
			slog.Int64("assignment_id", assignment.ID))
	}
	return assignment, nil
}

// Revoke marks an assignment inactive. Revoking an already inactive
// assignment is a no-op.
func (s *Service) Revoke(ctx context.Context, id int64) error {
	if _, err := s.repo.GetAssignment(ctx, id); err != nil {
		return err
	}
	return s.repo.SetAssignmentActive(ctx, id, false)
}

// Remove hard-deletes an assignment row, erasing it from the grant history.
func (s *Service) Remove(ctx context.Context, id int64) error {
	return s.repo.DeleteAssignment(ctx, id)
}

// Get fetches a single assignment by ID.
func (s *Service) Get(ctx context.Context, id int64) (Assignment, error) {
	return s.repo.GetAssignment(ctx, id)
}

// AssignmentsForUser lists the user's grant history, newest first.
func (s *Service) AssignmentsForUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]Assignment, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user ID required", shared.ErrValidation)
	}
	return s.repo.AssignmentsForUser(ctx, userID, activeOnly)
}

// RolesForUser lists the roles assigned to a user.
func (s *Service) RolesForUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]roles.Role, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user ID required", shared.ErrValidation)
	}
	return s.repo.RolesForUser(ctx, userID, activeOnly)
}

// HasRole reports whether the user holds an active assignment of an active
// role with the given name. Name comparison is case-insensitive, matching
// role lookup by name.
func (s *Service) HasRole(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, fmt.Errorf("%w: role name required", shared.ErrValidation)
	}
	effective, err := s.repo.EffectiveRolesForUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, role := range effective {
		if strings.EqualFold(role.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// IsAdmin reports whether the user effectively holds the admin role.
func (s *Service) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.HasRole(ctx, userID, AdminRoleName)
}

// EffectivePermissions returns the union of permissions across the user's
// active roles with active assignments. The wildcard survives the union so
// middleware can honor it.
func (s *Service) EffectivePermissions(ctx context.Context, userID uuid.UUID) ([]string, error) {
	effective, err := s.repo.EffectiveRolesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	granted := []string{}
	for _, role := range effective {
		for _, perm := range role.PermissionsList() {
			if _, ok := seen[perm]; ok {
				continue
			}
			seen[perm] = struct{}{}
			granted = append(granted, perm)
		}
	}
	return granted, nil
}
