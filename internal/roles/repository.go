package roles

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/readypath/readypath/internal/shared"
)

const roleColumns = `id, name, COALESCE(description, ''), COALESCE(permissions, ''), is_active, created_at, updated_at`

// ListFilters narrows role listings.
type ListFilters struct {
	shared.ListParams
	ActiveOnly bool
	Search     string
}

// UpdateRoleParams enumerates the mutable role fields. Nil pointers leave the
// column untouched.
type UpdateRoleParams struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// Repository defines data access methods for roles.
type Repository interface {
	Create(ctx context.Context, role Role) (Role, error)
	GetByID(ctx context.Context, id int64) (Role, error)
	GetByName(ctx context.Context, name string) (Role, error)
	ExistsName(ctx context.Context, name string, excludeID int64) (bool, error)
	List(ctx context.Context, filters ListFilters) ([]Role, error)
	Update(ctx context.Context, id int64, params UpdateRoleParams) (Role, error)
	UpdatePermissions(ctx context.Context, id int64, serialized string) (Role, error)
	Delete(ctx context.Context, id int64) error
	CountActiveAssignments(ctx context.Context, roleID int64) (int, error)
	Statistics(ctx context.Context) (Statistics, error)
	AssignmentCounts(ctx context.Context) ([]PopularRole, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, role Role) (Role, error) {
	now := time.Now()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO roles (name, description, permissions, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id`,
		role.Name, role.Description, role.Permissions, role.IsActive, now).Scan(&role.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return Role{}, fmt.Errorf("%w: role %q already exists", shared.ErrConflict, role.Name)
		}
		return Role{}, err
	}
	role.CreatedAt = now
	role.UpdatedAt = now
	return role, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (Role, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id)
	return scanRole(row)
}

func (r *repository) GetByName(ctx context.Context, name string) (Role, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE LOWER(name) = LOWER($1)`, name)
	return scanRole(row)
}

func (r *repository) ExistsName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM roles WHERE name = $1 AND id <> $2)`,
		name, excludeID).Scan(&exists)
	return exists, err
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE 1=1`
	args := []any{}
	n := 0

	if filters.ActiveOnly {
		query += ` AND is_active`
	}
	if filters.Search != "" {
		n++
		query += ` AND (name ILIKE $` + strconv.Itoa(n) + ` OR description ILIKE $` + strconv.Itoa(n) + `)`
		args = append(args, "%"+filters.Search+"%")
	}

	n++
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(n)
	args = append(args, filters.Limit)
	n++
	query += ` OFFSET $` + strconv.Itoa(n)
	args = append(args, filters.Skip)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Role{}
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, role)
	}
	return list, rows.Err()
}

func (r *repository) Update(ctx context.Context, id int64, params UpdateRoleParams) (Role, error) {
	query := `UPDATE roles SET updated_at = now()`
	args := []any{id}
	n := 1

	if params.Name != nil {
		n++
		query += `, name = $` + strconv.Itoa(n)
		args = append(args, *params.Name)
	}
	if params.Description != nil {
		n++
		query += `, description = $` + strconv.Itoa(n)
		args = append(args, *params.Description)
	}
	if params.IsActive != nil {
		n++
		query += `, is_active = $` + strconv.Itoa(n)
		args = append(args, *params.IsActive)
	}
	query += ` WHERE id = $1 RETURNING ` + roleColumns

	role, err := scanRole(r.pool.QueryRow(ctx, query, args...))
	if err != nil && isUniqueViolation(err) {
		return Role{}, fmt.Errorf("%w: role name already exists", shared.ErrConflict)
	}
	return role, err
}

func (r *repository) UpdatePermissions(ctx context.Context, id int64, serialized string) (Role, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE roles SET permissions = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+roleColumns, id, serialized)
	return scanRole(row)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: role %d", shared.ErrNotFound, id)
	}
	return nil
}

func (r *repository) CountActiveAssignments(ctx context.Context, roleID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_roles WHERE role_id = $1 AND is_active`, roleID).Scan(&count)
	return count, err
}

func (r *repository) Statistics(ctx context.Context) (Statistics, error) {
	var stats Statistics
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_active),
		       COUNT(*) FILTER (WHERE COALESCE(permissions, '') <> ''),
		       COALESCE(AVG(LENGTH(permissions)) FILTER (WHERE COALESCE(permissions, '') <> ''), 0)
		FROM roles`).Scan(
		&stats.TotalRoles, &stats.ActiveRoles,
		&stats.PermissionStats.RolesWithPermissions,
		&stats.PermissionStats.AveragePermissionLength)
	if err != nil {
		return Statistics{}, err
	}
	stats.InactiveRoles = stats.TotalRoles - stats.ActiveRoles
	return stats, nil
}

// AssignmentCounts returns the active assignment count of every role,
// ordered by role ID. The service ranks and truncates the result.
func (r *repository) AssignmentCounts(ctx context.Context) ([]PopularRole, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.name, COALESCE(r.description, ''),
		       COUNT(ur.id) FILTER (WHERE ur.is_active)
		FROM roles r
		LEFT JOIN user_roles ur ON ur.role_id = r.id
		GROUP BY r.id, r.name, r.description
		ORDER BY r.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []PopularRole{}
	for rows.Next() {
		var p PopularRole
		if err := rows.Scan(&p.Name, &p.Description, &p.UserCount); err != nil {
			return nil, err
		}
		counts = append(counts, p)
	}
	return counts, rows.Err()
}

func scanRole(row pgx.Row) (Role, error) {
	var role Role
	err := row.Scan(&role.ID, &role.Name, &role.Description, &role.Permissions,
		&role.IsActive, &role.CreatedAt, &role.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Role{}, fmt.Errorf("%w: role", shared.ErrNotFound)
	}
	return role, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
