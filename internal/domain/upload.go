package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stage is a step of the upload pipeline.
type Stage string

const (
	StageReceived      Stage = "received"
	StageFilesSaved    Stage = "files_saved"
	StageTextExtracted Stage = "text_extracted"
	StageGitHubFetched Stage = "github_fetched"
	StageLLMCalled     Stage = "llm_called"
	StageSanitized     Stage = "sanitized"
	StagePersisted     Stage = "persisted"
	StageDone          Stage = "done"
	StageFailed        Stage = "failed"
)

// Terminal reports whether no further transition is possible from s.
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageFailed
}

// ResumeUpload records one pass through the upload pipeline. It is stored
// next to the session's files.
type ResumeUpload struct {
	ID              uuid.UUID `json:"id"`
	JobTitle        string    `json:"job_title"`
	ExperienceLevel string    `json:"experience_level"`
	GitHubUsername  string    `json:"github_username,omitempty"`
	ResumeFile      string    `json:"resume_file,omitempty"`
	LinkedInFile    string    `json:"linkedin_file,omitempty"`
	Stage           Stage     `json:"stage"`
	FailedAt        Stage     `json:"failed_at,omitempty"`
	Error           string    `json:"error,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewResumeUpload starts a record in the received stage.
func NewResumeUpload(jobTitle, level, github string) *ResumeUpload {
	now := time.Now().UTC()
	return &ResumeUpload{
		ID:              uuid.New(),
		JobTitle:        jobTitle,
		ExperienceLevel: level,
		GitHubUsername:  github,
		Stage:           StageReceived,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Advance moves u to s unless u already ended.
func (u *ResumeUpload) Advance(s Stage) {
	if u.Stage.Terminal() {
		return
	}
	u.Stage = s
	u.UpdatedAt = time.Now().UTC()
}

// Fail records err against the stage that was running.
func (u *ResumeUpload) Fail(err error) {
	if u.Stage.Terminal() {
		return
	}
	u.FailedAt = u.Stage
	u.Stage = StageFailed
	if err != nil {
		u.Error = err.Error()
	}
	u.UpdatedAt = time.Now().UTC()
}
