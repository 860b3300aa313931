package resumes

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/readypath/readypath/internal/shared"
)

// AnalysisQueue enqueues background analysis work. Satisfied by the jobs
// client without importing it here.
type AnalysisQueue interface {
	EnqueueResumeAnalysis(ctx context.Context, resumeID int64) error
}

// CreateResumeParams carries the resume upload metadata.
type CreateResumeParams struct {
	UserID          uuid.UUID
	Title           string
	FilePath        string
	FileName        string
	FileSize        int64
	FileType        string
	Summary         string
	ExperienceYears float64
	EducationLevel  string
	Skills          []string
	Languages       []string
	IsPublic        bool
}

// Service handles resume business logic.
type Service struct {
	repo   Repository
	queue  AnalysisQueue
	logger *slog.Logger
}

// NewService builds a Service instance. The queue may be nil when background
// analysis is disabled.
func NewService(repo Repository, queue AnalysisQueue, logger *slog.Logger) *Service {
	return &Service{repo: repo, queue: queue, logger: logger}
}

// Create stores a new resume for the user.
func (s *Service) Create(ctx context.Context, params CreateResumeParams) (Resume, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return Resume{}, fmt.Errorf("%w: resume title required", shared.ErrValidation)
	}
	if params.UserID == uuid.Nil {
		return Resume{}, fmt.Errorf("%w: user ID required", shared.ErrValidation)
	}

	resume := Resume{
		UserID:          params.UserID,
		Title:           title,
		FilePath:        params.FilePath,
		FileName:        params.FileName,
		FileSize:        params.FileSize,
		FileType:        params.FileType,
		Summary:         strings.TrimSpace(params.Summary),
		ExperienceYears: params.ExperienceYears,
		EducationLevel:  strings.TrimSpace(params.EducationLevel),
		IsActive:        true,
		IsPublic:        params.IsPublic,
	}
	resume.SetSkillsList(params.Skills)
	resume.SetLanguagesList(params.Languages)
	return s.repo.Create(ctx, resume)
}

// Get fetches a resume by ID.
func (s *Service) Get(ctx context.Context, id int64) (Resume, error) {
	if id <= 0 {
		return Resume{}, fmt.Errorf("%w: invalid resume ID", shared.ErrValidation)
	}
	return s.repo.GetByID(ctx, id)
}

// ListByUser lists a user's resumes, newest first.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, skip, limit int, activeOnly bool) ([]Resume, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user ID required", shared.ErrValidation)
	}
	return s.repo.ListByUser(ctx, userID, shared.NormalizeListParams(skip, limit), activeOnly)
}

// Update patches the enumerated resume fields.
func (s *Service) Update(ctx context.Context, id int64, params UpdateResumeParams) (Resume, error) {
	if id <= 0 {
		return Resume{}, fmt.Errorf("%w: invalid resume ID", shared.ErrValidation)
	}
	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return Resume{}, fmt.Errorf("%w: resume title required", shared.ErrValidation)
		}
		params.Title = &title
	}
	return s.repo.Update(ctx, id, params)
}

// SetSkills replaces the resume's skill list with the normalized input.
func (s *Service) SetSkills(ctx context.Context, id int64, skills []string) (Resume, error) {
	encoded := encodeList(skills)
	return s.Update(ctx, id, UpdateResumeParams{Skills: &encoded})
}

// SetLanguages replaces the resume's language list.
func (s *Service) SetLanguages(ctx context.Context, id int64, languages []string) (Resume, error) {
	encoded := encodeList(languages)
	return s.Update(ctx, id, UpdateResumeParams{Languages: &encoded})
}

// Delete hard-deletes a resume; scores referencing it cascade away.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid resume ID", shared.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

// RequestAnalysis enqueues background analysis for the resume. Returns false
// without enqueuing when the last analysis is still fresh.
func (s *Service) RequestAnalysis(ctx context.Context, id int64) (bool, error) {
	resume, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if resume.IsRecentlyAnalyzed() {
		return false, nil
	}
	if s.queue == nil {
		return false, fmt.Errorf("%w: analysis queue unavailable", shared.ErrValidation)
	}
	if err := s.queue.EnqueueResumeAnalysis(ctx, id); err != nil {
		return false, err
	}
	if s.logger != nil {
		s.logger.Info("resume analysis queued", slog.Int64("resume_id", id))
	}
	return true, nil
}

// MarkAnalyzed records a completed analysis timestamp. Used by the worker.
func (s *Service) MarkAnalyzed(ctx context.Context, id int64, at time.Time) error {
	return s.repo.MarkAnalyzed(ctx, id, at)
}
