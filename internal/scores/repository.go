package scores

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/readypath/readypath/internal/shared"
)

const scoreColumns = `id, user_id, resume_id, analysis_type, COALESCE(job_title, ''),
	COALESCE(company, ''), overall_score, COALESCE(skill_score, 0),
	COALESCE(experience_score, 0), COALESCE(education_score, 0),
	skill_matches, skill_gaps, COALESCE(recommendations, ''), analysis_details,
	is_active, analysis_date, created_at, updated_at`

// Repository defines data access methods for scores.
type Repository interface {
	Create(ctx context.Context, score Score) (Score, error)
	GetByID(ctx context.Context, id int64) (Score, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params shared.ListParams) ([]Score, error)
	ListByResume(ctx context.Context, resumeID int64, params shared.ListParams) ([]Score, error)
	LatestForResume(ctx context.Context, resumeID int64) (Score, error)
	Deactivate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, score Score) (Score, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO scores (user_id, resume_id, analysis_type, job_title, company,
			overall_score, skill_score, experience_score, education_score,
			skill_matches, skill_gaps, recommendations, analysis_details,
			is_active, analysis_date)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9,
			$10, $11, NULLIF($12, ''), $13, $14, $15)
		RETURNING `+scoreColumns,
		score.UserID, score.ResumeID, score.AnalysisType, score.JobTitle, score.Company,
		score.OverallScore, score.SkillScore, score.ExperienceScore, score.EducationScore,
		score.SkillMatches, score.SkillGaps, score.Recommendations, score.AnalysisDetails,
		score.IsActive, score.AnalysisDate)
	return scanScore(row)
}

func (r *repository) GetByID(ctx context.Context, id int64) (Score, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+scoreColumns+` FROM scores WHERE id = $1`, id)
	score, err := scanScore(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Score{}, fmt.Errorf("%w: score %d", shared.ErrNotFound, id)
	}
	return score, err
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, params shared.ListParams) ([]Score, error) {
	return r.list(ctx, `SELECT `+scoreColumns+` FROM scores
		WHERE user_id = $1 AND is_active
		ORDER BY created_at DESC OFFSET $2 LIMIT $3`, userID, params.Skip, params.Limit)
}

func (r *repository) ListByResume(ctx context.Context, resumeID int64, params shared.ListParams) ([]Score, error) {
	return r.list(ctx, `SELECT `+scoreColumns+` FROM scores
		WHERE resume_id = $1 AND is_active
		ORDER BY created_at DESC OFFSET $2 LIMIT $3`, resumeID, params.Skip, params.Limit)
}

func (r *repository) LatestForResume(ctx context.Context, resumeID int64) (Score, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+scoreColumns+` FROM scores
		WHERE resume_id = $1 AND is_active
		ORDER BY created_at DESC LIMIT 1`, resumeID)
	score, err := scanScore(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Score{}, fmt.Errorf("%w: no scores for resume %d", shared.ErrNotFound, resumeID)
	}
	return score, err
}

func (r *repository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE scores SET is_active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: score %d", shared.ErrNotFound, id)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM scores WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: score %d", shared.ErrNotFound, id)
	}
	return nil
}

func (r *repository) list(ctx context.Context, query string, args ...any) ([]Score, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Score{}
	for rows.Next() {
		score, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, score)
	}
	return list, rows.Err()
}

func scanScore(row pgx.Row) (Score, error) {
	var s Score
	err := row.Scan(
		&s.ID, &s.UserID, &s.ResumeID, &s.AnalysisType, &s.JobTitle, &s.Company,
		&s.OverallScore, &s.SkillScore, &s.ExperienceScore, &s.EducationScore,
		&s.SkillMatches, &s.SkillGaps, &s.Recommendations, &s.AnalysisDetails,
		&s.IsActive, &s.AnalysisDate, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}
