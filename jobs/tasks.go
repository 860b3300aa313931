package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskResumeAnalyze is the task type for resume analysis runs.
	TaskResumeAnalyze = "resume:analyze"
)

// ResumeAnalyzePayload identifies the resume to analyze.
type ResumeAnalyzePayload struct {
	ResumeID int64 `json:"resume_id"`
}

// NewResumeAnalyzeTask constructs an Asynq task.
func NewResumeAnalyzeTask(resumeID int64) (*asynq.Task, error) {
	data, err := json.Marshal(ResumeAnalyzePayload{ResumeID: resumeID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskResumeAnalyze, data), nil
}
