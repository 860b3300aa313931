package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/hibiken/asynq"

	"github.com/readypath/readypath/internal/resumes"
	"github.com/readypath/readypath/internal/scores"
	"github.com/readypath/readypath/internal/shared"
)

// ResumeAnalysisJob turns a stored resume into an assessment record. The
// scoring model is a metadata heuristic; richer analyzers plug in behind the
// same task type.
type ResumeAnalysisJob struct {
	Resumes *resumes.Service
	Scores  *scores.Service
	Logger  *slog.Logger
	clock   func() time.Time
}

// NewResumeAnalysisJob initialises the analysis handler.
func NewResumeAnalysisJob(resumeService *resumes.Service, scoreService *scores.Service, logger *slog.Logger) *ResumeAnalysisJob {
	return &ResumeAnalysisJob{
		Resumes: resumeService,
		Scores:  scoreService,
		Logger:  logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the analysis for one resume.
func (j *ResumeAnalysisJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Resumes == nil || j.Scores == nil {
		return errors.New("resume analysis: handler not configured")
	}
	var payload ResumeAnalyzePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	logger := j.logger().With(slog.Int64("resume_id", payload.ResumeID))
	logger.Info("starting resume analysis")

	resume, err := j.Resumes.Get(ctx, payload.ResumeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			logger.Warn("resume vanished before analysis")
			return asynq.SkipRetry
		}
		return err
	}

	now := j.now()
	assessment := assessResume(resume)
	score, err := j.Scores.Create(ctx, scores.CreateScoreParams{
		UserID:          resume.UserID,
		ResumeID:        resume.ID,
		AnalysisType:    "general",
		OverallScore:    assessment.overall,
		SkillScore:      assessment.skill,
		ExperienceScore: assessment.experience,
		EducationScore:  assessment.education,
		SkillMatches:    resume.SkillsList(),
		SkillGaps:       assessment.gaps,
		Recommendations: assessment.recommendations,
		AnalysisDetails: assessment.details,
		AnalysisDate:    &now,
	})
	if err != nil {
		return err
	}
	if err := j.Resumes.MarkAnalyzed(ctx, resume.ID, now); err != nil {
		return err
	}

	logger.Info("completed resume analysis",
		slog.Int64("score_id", score.ID),
		slog.Float64("overall", score.OverallScore),
		slog.String("grade", score.Grade()),
	)
	return nil
}

type assessment struct {
	overall         float64
	skill           float64
	experience      float64
	education       float64
	gaps            []string
	recommendations string
	details         map[string]any
}

// coreSkills are the baseline skills checked against every resume.
var coreSkills = []string{"communication", "teamwork", "problem solving"}

func assessResume(r resumes.Resume) assessment {
	skills := r.SkillsList()

	skillScore := float64(len(skills)) * 12
	if skillScore > 100 {
		skillScore = 100
	}

	expScore := r.ExperienceYears * 10
	if expScore > 100 {
		expScore = 100
	}

	eduScore := educationScore(r.EducationLevel)

	overall := skillScore*0.4 + expScore*0.4 + eduScore*0.2

	have := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		have[strings.ToLower(s)] = struct{}{}
	}
	gaps := []string{}
	for _, s := range coreSkills {
		if _, ok := have[s]; !ok {
			gaps = append(gaps, s)
		}
	}

	rec := "Profile looks complete."
	if len(gaps) > 0 {
		rec = "Consider adding evidence for: " + strings.Join(gaps, ", ") + "."
	}

	return assessment{
		overall:         overall,
		skill:           skillScore,
		experience:      expScore,
		education:       eduScore,
		gaps:            gaps,
		recommendations: rec,
		details: map[string]any{
			"skill_count":      len(skills),
			"experience_years": r.ExperienceYears,
			"education_level":  r.EducationLevel,
			"model":            "metadata-heuristic/v1",
		},
	}
}

func educationScore(level string) float64 {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "phd", "doctorate":
		return 100
	case "master", "masters":
		return 90
	case "bachelor", "bachelors":
		return 80
	case "associate":
		return 65
	case "high school", "diploma":
		return 50
	case "":
		return 40
	default:
		return 60
	}
}

func (j *ResumeAnalysisJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

func (j *ResumeAnalysisJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
