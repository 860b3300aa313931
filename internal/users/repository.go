package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/readypath/readypath/internal/shared"
)

const userColumns = `id, email, hashed_password, COALESCE(first_name, ''), COALESCE(last_name, ''),
	COALESCE(phone, ''), COALESCE(bio, ''), COALESCE(profile_picture_url, ''),
	is_active, is_superuser, is_verified, created_at, updated_at`

// Repository defines data access methods for users.
type Repository interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, params shared.ListParams, activeOnly bool) ([]User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, params UpdateProfileParams) (User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, user User) (User, error) {
	now := time.Now()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, hashed_password, first_name, last_name, phone, bio, profile_picture_url,
			is_active, is_superuser, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)`,
		user.ID, user.Email, user.HashedPassword, user.FirstName, user.LastName,
		user.Phone, user.Bio, user.ProfilePictureURL,
		user.IsActive, user.IsSuperuser, user.IsVerified, now)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, fmt.Errorf("%w: email %q already registered", shared.ErrConflict, user.Email)
		}
		return User{}, err
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	return user, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *repository) GetByEmail(ctx context.Context, email string) (User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
	return scanUser(row)
}

func (r *repository) List(ctx context.Context, params shared.ListParams, activeOnly bool) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, params.Limit, params.Skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *repository) UpdateProfile(ctx context.Context, id uuid.UUID, params UpdateProfileParams) (User, error) {
	query := `UPDATE users SET updated_at = now()`
	args := []any{id}
	n := 1

	set := func(column string, value any) {
		n++
		query += fmt.Sprintf(", %s = $%d", column, n)
		args = append(args, value)
	}
	if params.FirstName != nil {
		set("first_name", *params.FirstName)
	}
	if params.LastName != nil {
		set("last_name", *params.LastName)
	}
	if params.Phone != nil {
		set("phone", *params.Phone)
	}
	if params.Bio != nil {
		set("bio", *params.Bio)
	}
	if params.ProfilePictureURL != nil {
		set("profile_picture_url", *params.ProfilePictureURL)
	}
	if params.IsVerified != nil {
		set("is_verified", *params.IsVerified)
	}
	query += ` WHERE id = $1 RETURNING ` + userColumns

	row := r.pool.QueryRow(ctx, query, args...)
	return scanUser(row)
}

func (r *repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", shared.ErrNotFound, id)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", shared.ErrNotFound, id)
	}
	return nil
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.HashedPassword, &u.FirstName, &u.LastName,
		&u.Phone, &u.Bio, &u.ProfilePictureURL,
		&u.IsActive, &u.IsSuperuser, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, fmt.Errorf("%w: user", shared.ErrNotFound)
	}
	return u, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
