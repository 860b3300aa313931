package scores

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/readypath/readypath/internal/shared"
)

// CreateScoreParams carries the fields of a new assessment record.
type CreateScoreParams struct {
	UserID          uuid.UUID
	ResumeID        int64
	AnalysisType    string
	JobTitle        string
	Company         string
	OverallScore    float64
	SkillScore      float64
	ExperienceScore float64
	EducationScore  float64
	SkillMatches    []string
	SkillGaps       []string
	Recommendations string
	AnalysisDetails map[string]any
	AnalysisDate    *time.Time
}

// Service handles score business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create records a new assessment. Scores are validated to the 0-100 scale.
func (s *Service) Create(ctx context.Context, params CreateScoreParams) (Score, error) {
	if params.UserID == uuid.Nil {
		return Score{}, fmt.Errorf("%w: user ID required", shared.ErrValidation)
	}
	if params.ResumeID <= 0 {
		return Score{}, fmt.Errorf("%w: invalid resume ID", shared.ErrValidation)
	}
	analysisType := strings.TrimSpace(params.AnalysisType)
	if analysisType == "" {
		return Score{}, fmt.Errorf("%w: analysis type required", shared.ErrValidation)
	}
	for _, v := range []float64{params.OverallScore, params.SkillScore, params.ExperienceScore, params.EducationScore} {
		if v < 0 || v > 100 {
			return Score{}, fmt.Errorf("%w: scores must be between 0 and 100", shared.ErrValidation)
		}
	}

	analysisDate := params.AnalysisDate
	if analysisDate == nil {
		now := time.Now().UTC()
		analysisDate = &now
	}

	score := Score{
		UserID:          params.UserID,
		ResumeID:        params.ResumeID,
		AnalysisType:    analysisType,
		JobTitle:        strings.TrimSpace(params.JobTitle),
		Company:         strings.TrimSpace(params.Company),
		OverallScore:    params.OverallScore,
		SkillScore:      params.SkillScore,
		ExperienceScore: params.ExperienceScore,
		EducationScore:  params.EducationScore,
		Recommendations: strings.TrimSpace(params.Recommendations),
		IsActive:        true,
		AnalysisDate:    analysisDate,
	}
	score.SetSkillMatchesList(params.SkillMatches)
	score.SetSkillGapsList(params.SkillGaps)
	score.SetDetailsMap(params.AnalysisDetails)

	created, err := s.repo.Create(ctx, score)
	if err != nil {
		return Score{}, err
	}
	if s.logger != nil {
		s.logger.Info("score recorded",
			slog.Int64("score_id", created.ID),
			slog.Int64("resume_id", created.ResumeID),
			slog.String("grade", created.Grade()))
	}
	return created, nil
}

// Get fetches a score by ID.
func (s *Service) Get(ctx context.Context, id int64) (Score, error) {
	if id <= 0 {
		return Score{}, fmt.Errorf("%w: invalid score ID", shared.ErrValidation)
	}
	return s.repo.GetByID(ctx, id)
}

// ListByUser lists a user's active scores, newest first.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, skip, limit int) ([]Score, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user ID required", shared.ErrValidation)
	}
	return s.repo.ListByUser(ctx, userID, shared.NormalizeListParams(skip, limit))
}

// ListByResume lists a resume's active scores, newest first.
func (s *Service) ListByResume(ctx context.Context, resumeID int64, skip, limit int) ([]Score, error) {
	if resumeID <= 0 {
		return nil, fmt.Errorf("%w: invalid resume ID", shared.ErrValidation)
	}
	return s.repo.ListByResume(ctx, resumeID, shared.NormalizeListParams(skip, limit))
}

// Latest returns the most recent active score for a resume.
func (s *Service) Latest(ctx context.Context, resumeID int64) (Score, error) {
	if resumeID <= 0 {
		return Score{}, fmt.Errorf("%w: invalid resume ID", shared.ErrValidation)
	}
	return s.repo.LatestForResume(ctx, resumeID)
}

// Deactivate soft-hides a score from listings without losing the record.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid score ID", shared.ErrValidation)
	}
	return s.repo.Deactivate(ctx, id)
}

// Delete hard-deletes a score.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid score ID", shared.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}
