package scores

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Score is one AI assessment of a resume. SkillMatches and SkillGaps hold
// JSON-array text; AnalysisDetails holds a JSON object as text.
type Score struct {
	ID              int64      `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	ResumeID        int64      `json:"resume_id"`
	AnalysisType    string     `json:"analysis_type"`
	JobTitle        string     `json:"job_title,omitempty"`
	Company         string     `json:"company,omitempty"`
	OverallScore    float64    `json:"overall_score"`
	SkillScore      float64    `json:"skill_score,omitempty"`
	ExperienceScore float64    `json:"experience_score,omitempty"`
	EducationScore  float64    `json:"education_score,omitempty"`
	SkillMatches    string     `json:"-"`
	SkillGaps       string     `json:"-"`
	Recommendations string     `json:"recommendations,omitempty"`
	AnalysisDetails string     `json:"-"`
	IsActive        bool       `json:"is_active"`
	AnalysisDate    *time.Time `json:"analysis_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Grade returns the letter grade for the overall score.
func (s *Score) Grade() string {
	return GradeFor(s.OverallScore)
}

// Level returns the readiness level for the overall score.
func (s *Score) Level() string {
	return LevelFor(s.OverallScore)
}

// SkillMatchesList decodes the stored matches. Malformed text yields an
// empty list.
func (s *Score) SkillMatchesList() []string {
	return decodeList(s.SkillMatches)
}

// SetSkillMatchesList encodes the given matches.
func (s *Score) SetSkillMatchesList(matches []string) {
	s.SkillMatches = encodeList(matches)
}

// SkillGapsList decodes the stored gaps.
func (s *Score) SkillGapsList() []string {
	return decodeList(s.SkillGaps)
}

// SetSkillGapsList encodes the given gaps.
func (s *Score) SetSkillGapsList(gaps []string) {
	s.SkillGaps = encodeList(gaps)
}

// DetailsMap decodes the stored analysis details object. Malformed text
// yields an empty map.
func (s *Score) DetailsMap() map[string]any {
	if strings.TrimSpace(s.AnalysisDetails) == "" {
		return map[string]any{}
	}
	var details map[string]any
	if err := json.Unmarshal([]byte(s.AnalysisDetails), &details); err != nil {
		return map[string]any{}
	}
	return details
}

// SetDetailsMap encodes the given details object.
func (s *Score) SetDetailsMap(details map[string]any) {
	if details == nil {
		details = map[string]any{}
	}
	data, err := json.Marshal(details)
	if err != nil {
		s.AnalysisDetails = "{}"
		return
	}
	s.AnalysisDetails = string(data)
}

func decodeList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{}
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func encodeList(items []string) string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "[]"
	}
	return string(data)
}
