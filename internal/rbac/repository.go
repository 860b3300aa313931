package rbac

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/readypath/readypath/internal/platform/db"
	"github.com/readypath/readypath/internal/roles"
	"github.com/readypath/readypath/internal/shared"
)

const assignmentColumns = `id, user_id, role_id, assigned_by, is_active, assigned_at`

// Repository defines data access methods for the assignment ledger.
type Repository interface {
	CreateAssignment(ctx context.Context, userID uuid.UUID, roleID int64, assignedBy *uuid.UUID) (Assignment, error)
	GetAssignment(ctx context.Context, id int64) (Assignment, error)
	SetAssignmentActive(ctx context.Context, id int64, active bool) error
	DeleteAssignment(ctx context.Context, id int64) error
	AssignmentsForUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]Assignment, error)
	RolesForUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]roles.Role, error)
	EffectiveRolesForUser(ctx context.Context, userID uuid.UUID) ([]roles.Role, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// CreateAssignment validates both parents and inserts a fresh active row
// inside one transaction. Prior inactive rows are never reactivated. The
// partial unique index on (user_id, role_id) WHERE is_active is the final
// arbiter against concurrent assigns.
func (r *repository) CreateAssignment(ctx context.Context, userID uuid.UUID, roleID int64, assignedBy *uuid.UUID) (Assignment, error) {
	var assignment Assignment
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var userExists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&userExists); err != nil {
			return err
		}
		if !userExists {
			return fmt.Errorf("%w: user %s", shared.ErrNotFound, userID)
		}

		var roleExists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM roles WHERE id = $1)`, roleID).Scan(&roleExists); err != nil {
			return err
		}
		if !roleExists {
			return fmt.Errorf("%w: role %d", shared.ErrNotFound, roleID)
		}

		err := tx.QueryRow(ctx, `
			INSERT INTO user_roles (user_id, role_id, assigned_by, is_active, assigned_at)
			VALUES ($1, $2, $3, TRUE, now())
			RETURNING `+assignmentColumns,
			userID, roleID, assignedBy).Scan(
			&assignment.ID, &assignment.UserID, &assignment.RoleID,
			&assignment.AssignedBy, &assignment.IsActive, &assignment.AssignedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%w: user already holds this role", shared.ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return Assignment{}, err
	}
	return assignment, nil
}

func (r *repository) GetAssignment(ctx context.Context, id int64) (Assignment, error) {
	var a Assignment
	err := r.pool.QueryRow(ctx,
		`SELECT `+assignmentColumns+` FROM user_roles WHERE id = $1`, id).Scan(
		&a.ID, &a.UserID, &a.RoleID, &a.AssignedBy, &a.IsActive, &a.AssignedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Assignment{}, fmt.Errorf("%w: assignment %d", shared.ErrNotFound, id)
	}
	return a, err
}

func (r *repository) SetAssignmentActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE user_roles SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: assignment %d", shared.ErrNotFound, id)
	}
	return nil
}

func (r *repository) DeleteAssignment(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM user_roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: assignment %d", shared.ErrNotFound, id)
	}
	return nil
}

func (r *repository) AssignmentsForUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM user_roles WHERE user_id = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY assigned_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Assignment{}
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.UserID, &a.RoleID, &a.AssignedBy, &a.IsActive, &a.AssignedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *repository) RolesForUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]roles.Role, error) {
	query := `
		SELECT r.id, r.name, COALESCE(r.description, ''), COALESCE(r.permissions, ''), r.is_active, r.created_at, r.updated_at
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1`
	if activeOnly {
		query += ` AND ur.is_active`
	}
	query += ` ORDER BY ur.assigned_at DESC`
	return r.queryRoles(ctx, query, userID)
}

// EffectiveRolesForUser returns roles where both the assignment and the role
// itself are active; only those contribute effective grants.
func (r *repository) EffectiveRolesForUser(ctx context.Context, userID uuid.UUID) ([]roles.Role, error) {
	const query = `
		SELECT r.id, r.name, COALESCE(r.description, ''), COALESCE(r.permissions, ''), r.is_active, r.created_at, r.updated_at
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1 AND ur.is_active AND r.is_active
		ORDER BY ur.assigned_at DESC`
	return r.queryRoles(ctx, query, userID)
}

func (r *repository) queryRoles(ctx context.Context, query string, args ...any) ([]roles.Role, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []roles.Role{}
	for rows.Next() {
		var role roles.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.Permissions,
			&role.IsActive, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, role)
	}
	return list, rows.Err()
}
