package resumes

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// analysisFreshness is how long an analysis result is considered recent.
const analysisFreshness = 30 * 24 * time.Hour

// Resume is an uploaded document plus the metadata extracted from it.
// Skills and Languages hold JSON-array text, same codec as role permissions.
type Resume struct {
	ID              int64      `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	Title           string     `json:"title"`
	FilePath        string     `json:"file_path,omitempty"`
	FileName        string     `json:"file_name,omitempty"`
	FileSize        int64      `json:"file_size,omitempty"`
	FileType        string     `json:"file_type,omitempty"`
	Summary         string     `json:"summary,omitempty"`
	ExperienceYears float64    `json:"experience_years,omitempty"`
	EducationLevel  string     `json:"education_level,omitempty"`
	Skills          string     `json:"-"`
	Languages       string     `json:"-"`
	IsActive        bool       `json:"is_active"`
	IsPublic        bool       `json:"is_public"`
	LastAnalyzed    *time.Time `json:"last_analyzed,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// SkillsList decodes the stored skills. Malformed or empty text yields an
// empty list.
func (r *Resume) SkillsList() []string {
	return decodeList(r.Skills)
}

// SetSkillsList encodes the given skills, trimming and deduplicating.
func (r *Resume) SetSkillsList(skills []string) {
	r.Skills = encodeList(skills)
}

// LanguagesList decodes the stored languages.
func (r *Resume) LanguagesList() []string {
	return decodeList(r.Languages)
}

// SetLanguagesList encodes the given languages.
func (r *Resume) SetLanguagesList(languages []string) {
	r.Languages = encodeList(languages)
}

// FileSizeMB reports the upload size in megabytes, rounded to two decimals.
func (r *Resume) FileSizeMB() float64 {
	if r.FileSize <= 0 {
		return 0
	}
	mb := float64(r.FileSize) / (1024 * 1024)
	return float64(int64(mb*100+0.5)) / 100
}

// NeedsAnalysis reports whether the resume has never been analyzed.
func (r *Resume) NeedsAnalysis() bool {
	return r.LastAnalyzed == nil
}

// IsRecentlyAnalyzed reports whether the last analysis is fresh enough to
// skip re-queuing.
func (r *Resume) IsRecentlyAnalyzed() bool {
	if r.LastAnalyzed == nil {
		return false
	}
	return time.Since(*r.LastAnalyzed) < analysisFreshness
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
