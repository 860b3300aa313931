package resumes

import (
	"time"

	"github.com/google/uuid"
)

type createResumeRequest struct {
	UserID          string   `json:"user_id" validate:"required,uuid4"`
	Title           string   `json:"title" validate:"required,max=200"`
	FilePath        string   `json:"file_path" validate:"max=500"`
	FileName        string   `json:"file_name" validate:"max=255"`
	FileSize        int64    `json:"file_size" validate:"gte=0"`
	FileType        string   `json:"file_type" validate:"max=50"`
	Summary         string   `json:"summary" validate:"max=2000"`
	ExperienceYears float64  `json:"experience_years" validate:"gte=0,lte=80"`
	EducationLevel  string   `json:"education_level" validate:"max=100"`
	Skills          []string `json:"skills"`
	Languages       []string `json:"languages"`
	IsPublic        bool     `json:"is_public"`
}

type updateResumeRequest struct {
	Title           *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Summary         *string  `json:"summary" validate:"omitempty,max=2000"`
	ExperienceYears *float64 `json:"experience_years" validate:"omitempty,gte=0,lte=80"`
	EducationLevel  *string  `json:"education_level" validate:"omitempty,max=100"`
	Skills          []string `json:"skills"`
	Languages       []string `json:"languages"`
	IsActive        *bool    `json:"is_active"`
	IsPublic        *bool    `json:"is_public"`
}

type resumeResponse struct {
	ID              int64      `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	Title           string     `json:"title"`
	FileName        string     `json:"file_name,omitempty"`
	FileSizeMB      float64    `json:"file_size_mb"`
	FileType        string     `json:"file_type,omitempty"`
	Summary         string     `json:"summary,omitempty"`
	ExperienceYears float64    `json:"experience_years"`
	EducationLevel  string     `json:"education_level,omitempty"`
	Skills          []string   `json:"skills"`
	Languages       []string   `json:"languages"`
	IsActive        bool       `json:"is_active"`
	IsPublic        bool       `json:"is_public"`
	NeedsAnalysis   bool       `json:"needs_analysis"`
	LastAnalyzed    *time.Time `json:"last_analyzed,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func toResumeResponse(r Resume) resumeResponse {
	return resumeResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		Title:           r.Title,
		FileName:        r.FileName,
		FileSizeMB:      r.FileSizeMB(),
		FileType:        r.FileType,
		Summary:         r.Summary,
		ExperienceYears: r.ExperienceYears,
		EducationLevel:  r.EducationLevel,
		Skills:          r.SkillsList(),
		Languages:       r.LanguagesList(),
		IsActive:        r.IsActive,
		IsPublic:        r.IsPublic,
		NeedsAnalysis:   r.NeedsAnalysis(),
		LastAnalyzed:    r.LastAnalyzed,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
