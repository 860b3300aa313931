package scores

import (
	"time"

	"github.com/google/uuid"
)

type createScoreRequest struct {
	UserID          string         `json:"user_id" validate:"required,uuid4"`
	ResumeID        int64          `json:"resume_id" validate:"required,gt=0"`
	AnalysisType    string         `json:"analysis_type" validate:"required,max=100"`
	JobTitle        string         `json:"job_title" validate:"max=200"`
	Company         string         `json:"company" validate:"max=200"`
	OverallScore    float64        `json:"overall_score" validate:"gte=0,lte=100"`
	SkillScore      float64        `json:"skill_score" validate:"gte=0,lte=100"`
	ExperienceScore float64        `json:"experience_score" validate:"gte=0,lte=100"`
	EducationScore  float64        `json:"education_score" validate:"gte=0,lte=100"`
	SkillMatches    []string       `json:"skill_matches"`
	SkillGaps       []string       `json:"skill_gaps"`
	Recommendations string         `json:"recommendations" validate:"max=5000"`
	AnalysisDetails map[string]any `json:"analysis_details"`
}

type scoreResponse struct {
	ID              int64          `json:"id"`
	UserID          uuid.UUID      `json:"user_id"`
	ResumeID        int64          `json:"resume_id"`
	AnalysisType    string         `json:"analysis_type"`
	JobTitle        string         `json:"job_title,omitempty"`
	Company         string         `json:"company,omitempty"`
	OverallScore    float64        `json:"overall_score"`
	SkillScore      float64        `json:"skill_score"`
	ExperienceScore float64        `json:"experience_score"`
	EducationScore  float64        `json:"education_score"`
	Grade           string         `json:"grade"`
	Level           string         `json:"level"`
	SkillMatches    []string       `json:"skill_matches"`
	SkillGaps       []string       `json:"skill_gaps"`
	Recommendations string         `json:"recommendations,omitempty"`
	AnalysisDetails map[string]any `json:"analysis_details"`
	IsActive        bool           `json:"is_active"`
	AnalysisDate    *time.Time     `json:"analysis_date,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

func toScoreResponse(s Score) scoreResponse {
	return scoreResponse{
		ID:              s.ID,
		UserID:          s.UserID,
		ResumeID:        s.ResumeID,
		AnalysisType:    s.AnalysisType,
		JobTitle:        s.JobTitle,
		Company:         s.Company,
		OverallScore:    s.OverallScore,
		SkillScore:      s.SkillScore,
		ExperienceScore: s.ExperienceScore,
		EducationScore:  s.EducationScore,
		Grade:           s.Grade(),
		Level:           s.Level(),
		SkillMatches:    s.SkillMatchesList(),
		SkillGaps:       s.SkillGapsList(),
		Recommendations: s.Recommendations,
		AnalysisDetails: s.DetailsMap(),
		IsActive:        s.IsActive,
		AnalysisDate:    s.AnalysisDate,
		CreatedAt:       s.CreatedAt,
	}
}
