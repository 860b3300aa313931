package roles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/readypath/readypath/internal/platform/cache"
	"github.com/readypath/readypath/internal/shared"
)

const statsCacheKey = "roles:statistics"

// Service handles role business logic.
type Service struct {
	repo   Repository
	cache  *cache.Cache
	logger *slog.Logger
}

// NewService builds a Service instance. The cache may be nil, in which case
// statistics are computed on every call.
func NewService(repo Repository, statsCache *cache.Cache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: statsCache, logger: logger}
}

// Create registers a new role. The name must be unique among all roles,
// active or not, compared case-sensitively.
func (s *Service) Create(ctx context.Context, name, description string, permissions []string) (Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Role{}, fmt.Errorf("%w: role name required", shared.ErrValidation)
	}

	exists, err := s.repo.ExistsName(ctx, name, 0)
	if err != nil {
		return Role{}, err
	}
	if exists {
		return Role{}, fmt.Errorf("%w: role %q already exists", shared.ErrConflict, name)
	}

	role := Role{
		Name:        name,
		Description: strings.TrimSpace(description),
		IsActive:    true,
	}
	role.SetPermissionsList(permissions)
	created, err := s.repo.Create(ctx, role)
	if err != nil {
		return Role{}, err
	}
	s.invalidateStats(ctx)
	return created, nil
}

// Get fetches a role by ID.
func (s *Service) Get(ctx context.Context, id int64) (Role, error) {
	if id <= 0 {
		return Role{}, fmt.Errorf("%w: invalid role ID", shared.ErrValidation)
	}
	return s.repo.GetByID(ctx, id)
}

// GetByName fetches a role by name, case-insensitively.
func (s *Service) GetByName(ctx context.Context, name string) (Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Role{}, fmt.Errorf("%w: role name required", shared.ErrValidation)
	}
	return s.repo.GetByName(ctx, name)
}

// List returns roles ordered by creation time descending. Search matches
// name or description case-insensitively as a substring.
func (s *Service) List(ctx context.Context, skip, limit int, activeOnly bool, search string) ([]Role, error) {
	return s.repo.List(ctx, ListFilters{
		ListParams: shared.NormalizeListParams(skip, limit),
		ActiveOnly: activeOnly,
		Search:     strings.TrimSpace(search),
	})
}

// Update patches the enumerated role fields. Name changes re-check global
// uniqueness excluding the role itself.
func (s *Service) Update(ctx context.Context, id int64, params UpdateRoleParams) (Role, error) {
	if id <= 0 {
		return Role{}, fmt.Errorf("%w: invalid role ID", shared.ErrValidation)
	}
	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return Role{}, fmt.Errorf("%w: role name required", shared.ErrValidation)
		}
		exists, err := s.repo.ExistsName(ctx, name, id)
		if err != nil {
			return Role{}, err
		}
		if exists {
			return Role{}, fmt.Errorf("%w: role %q already exists", shared.ErrConflict, name)
		}
		params.Name = &name
	}
	role, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return Role{}, err
	}
	s.invalidateStats(ctx)
	return role, nil
}

// Delete hard-deletes a role. It refuses while active assignments reference
// the role; callers revoke those first or use Disable instead.
func (s *Service) Delete(ctx context.Context, id int64) error {
	role, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	count, err := s.repo.CountActiveAssignments(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: role %q has %d active assignments", shared.ErrBlocked, role.Name, count)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

// Disable soft-disables the role; existing assignments stay but stop
// granting effective permissions.
func (s *Service) Disable(ctx context.Context, id int64) error {
	inactive := false
	_, err := s.Update(ctx, id, UpdateRoleParams{IsActive: &inactive})
	return err
}

// Enable re-activates a disabled role.
func (s *Service) Enable(ctx context.Context, id int64) error {
	active := true
	_, err := s.Update(ctx, id, UpdateRoleParams{IsActive: &active})
	return err
}

// SetPermissions replaces the role's permission set with the normalized
// input and refreshes updated_at.
func (s *Service) SetPermissions(ctx context.Context, id int64, permissions []string) (Role, error) {
	role, err := s.Get(ctx, id)
	if err != nil {
		return Role{}, err
	}
	role.SetPermissionsList(permissions)
	return s.persistPermissions(ctx, role)
}

// AddPermission appends a single permission. The boolean mirrors the codec:
// false means the value was empty or already present and nothing changed.
func (s *Service) AddPermission(ctx context.Context, id int64, permission string) (Role, bool, error) {
	role, err := s.Get(ctx, id)
	if err != nil {
		return Role{}, false, err
	}
	if !role.AddPermission(permission) {
		return role, false, nil
	}
	role, err = s.persistPermissions(ctx, role)
	return role, err == nil, err
}

// RemovePermission removes a single permission; false means it was absent.
func (s *Service) RemovePermission(ctx context.Context, id int64, permission string) (Role, bool, error) {
	role, err := s.Get(ctx, id)
	if err != nil {
		return Role{}, false, err
	}
	if !role.RemovePermission(permission) {
		return role, false, nil
	}
	role, err = s.persistPermissions(ctx, role)
	return role, err == nil, err
}

// Statistics returns the role statistics overview, served from cache when
// fresh.
func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	var stats Statistics
	if err := s.cache.Get(ctx, statsCacheKey, &stats); err == nil {
		return stats, nil
	} else if !errors.Is(err, cache.ErrMiss) && s.logger != nil {
		s.logger.Warn("stats cache read", slog.Any("error", err))
	}

	stats, err := s.repo.Statistics(ctx)
	if err != nil {
		return Statistics{}, err
	}
	counts, err := s.repo.AssignmentCounts(ctx)
	if err != nil {
		return Statistics{}, err
	}
	stats.PopularRoles = rankPopularRoles(counts)
	if err := s.cache.Set(ctx, statsCacheKey, stats); err != nil && s.logger != nil {
		s.logger.Warn("stats cache write", slog.Any("error", err))
	}
	return stats, nil
}

func (s *Service) persistPermissions(ctx context.Context, role Role) (Role, error) {
	updated, err := s.repo.UpdatePermissions(ctx, role.ID, role.Permissions)
	if err != nil {
		return Role{}, err
	}
	s.invalidateStats(ctx)
	return updated, nil
}

func (s *Service) invalidateStats(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, statsCacheKey); err != nil && s.logger != nil {
		s.logger.Warn("stats cache invalidate", slog.Any("error", err))
	}
}
