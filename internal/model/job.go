package model

import "time"

// JobStatus is the lifecycle state of a story generation job.
type JobStatus string

// Job statuses are strictly forward-only:
// pending -> processing -> completed | failed.
const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// StoryJob tracks one asynchronous story generation request so the
// client can poll for completion. StoryID is set if and only if the job
// reached completed; Error is set only on failure.
type StoryJob struct {
	JobID       string     `json:"job_id"`
	SessionID   string     `json:"session_id"`
	Theme       string     `json:"theme"`
	Status      JobStatus  `json:"status"`
	StoryID     *int64     `json:"story_id,omitempty"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// StoryJobResponse is the client-facing job descriptor.
type StoryJobResponse struct {
	JobID       string     `json:"job_id"`
	Status      JobStatus  `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	StoryID     *int64     `json:"story_id,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       *string    `json:"error,omitempty"`
}

// ToResponse converts the persisted job into its client descriptor.
func (j *StoryJob) ToResponse() StoryJobResponse {
	return StoryJobResponse{
		JobID:       j.JobID,
		Status:      j.Status,
		CreatedAt:   j.CreatedAt,
		StoryID:     j.StoryID,
		CompletedAt: j.CompletedAt,
		Error:       j.Error,
	}
}
