package resumes

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/readypath/readypath/internal/shared"
)

const resumeColumns = `id, user_id, title, COALESCE(file_path, ''), COALESCE(file_name, ''),
	COALESCE(file_size, 0), COALESCE(file_type, ''), COALESCE(summary, ''),
	COALESCE(experience_years, 0), COALESCE(education_level, ''),
	skills, languages, is_active, is_public, last_analyzed, created_at, updated_at`

// UpdateResumeParams enumerates the patchable resume fields. Nil pointers
// leave the column untouched.
type UpdateResumeParams struct {
	Title           *string
	Summary         *string
	ExperienceYears *float64
	EducationLevel  *string
	Skills          *string
	Languages       *string
	IsActive        *bool
	IsPublic        *bool
}

// Repository defines data access methods for resumes.
type Repository interface {
	Create(ctx context.Context, resume Resume) (Resume, error)
	GetByID(ctx context.Context, id int64) (Resume, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params shared.ListParams, activeOnly bool) ([]Resume, error)
	Update(ctx context.Context, id int64, params UpdateResumeParams) (Resume, error)
	MarkAnalyzed(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, resume Resume) (Resume, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO resumes (user_id, title, file_path, file_name, file_size, file_type,
			summary, experience_years, education_level, skills, languages, is_active, is_public)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, 0), NULLIF($6, ''),
			NULLIF($7, ''), $8, NULLIF($9, ''), $10, $11, $12, $13)
		RETURNING `+resumeColumns,
		resume.UserID, resume.Title, resume.FilePath, resume.FileName, resume.FileSize,
		resume.FileType, resume.Summary, resume.ExperienceYears, resume.EducationLevel,
		resume.Skills, resume.Languages, resume.IsActive, resume.IsPublic)
	return scanResume(row)
}

func (r *repository) GetByID(ctx context.Context, id int64) (Resume, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id)
	resume, err := scanResume(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Resume{}, fmt.Errorf("%w: resume %d", shared.ErrNotFound, id)
	}
	return resume, err
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, params shared.ListParams, activeOnly bool) ([]Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY created_at DESC OFFSET $2 LIMIT $3`

	rows, err := r.pool.Query(ctx, query, userID, params.Skip, params.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Resume{}
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, resume)
	}
	return list, rows.Err()
}

func (r *repository) Update(ctx context.Context, id int64, params UpdateResumeParams) (Resume, error) {
	sets := []string{}
	args := []any{id}

	add := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, col+" = $"+strconv.Itoa(len(args)))
	}

	if params.Title != nil {
		add("title", *params.Title)
	}
	if params.Summary != nil {
		add("summary", *params.Summary)
	}
	if params.ExperienceYears != nil {
		add("experience_years", *params.ExperienceYears)
	}
	if params.EducationLevel != nil {
		add("education_level", *params.EducationLevel)
	}
	if params.Skills != nil {
		add("skills", *params.Skills)
	}
	if params.Languages != nil {
		add("languages", *params.Languages)
	}
	if params.IsActive != nil {
		add("is_active", *params.IsActive)
	}
	if params.IsPublic != nil {
		add("is_public", *params.IsPublic)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	sets = append(sets, "updated_at = now()")

	query := `UPDATE resumes SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + resumeColumns
	row := r.pool.QueryRow(ctx, query, args...)
	resume, err := scanResume(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Resume{}, fmt.Errorf("%w: resume %d", shared.ErrNotFound, id)
	}
	return resume, err
}

func (r *repository) MarkAnalyzed(ctx context.Context, id int64, at time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE resumes SET last_analyzed = $2, updated_at = now() WHERE id = $1`, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: resume %d", shared.ErrNotFound, id)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: resume %d", shared.ErrNotFound, id)
	}
	return nil
}

func scanResume(row pgx.Row) (Resume, error) {
	var resume Resume
	err := row.Scan(
		&resume.ID, &resume.UserID, &resume.Title, &resume.FilePath, &resume.FileName,
		&resume.FileSize, &resume.FileType, &resume.Summary, &resume.ExperienceYears,
		&resume.EducationLevel, &resume.Skills, &resume.Languages, &resume.IsActive,
		&resume.IsPublic, &resume.LastAnalyzed, &resume.CreatedAt, &resume.UpdatedAt)
	return resume, err
}
