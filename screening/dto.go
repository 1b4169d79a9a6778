package screening

import (
	"time"

	"github.com/talentrail/screening/pkg/kernel"
)

// ScoringTask is the queue payload for one resume
type ScoringTask struct {
	ScreeningJobID kernel.ScreeningJobID `json:"screening_job_id"`
	JobID          kernel.JobID          `json:"job_id"`
	ResumeID       kernel.ResumeID       `json:"resume_id"`
	CandidateID    kernel.CandidateID    `json:"candidate_id"`
	FileName       string                `json:"file_name"`
	FilePath       string                `json:"file_path"`
	ContentType    string                `json:"content_type"`
	EnqueuedAt     time.Time             `json:"enqueued_at"`
}

// CreateScreeningRequest is the intake payload assembled by the API layer
type CreateScreeningRequest struct {
	JobID       kernel.JobID
	RequestedBy kernel.UserID
	Files       []UploadedFile
}

// UploadedFile is one resume received in the multipart request
type UploadedFile struct {
	Name        string
	Size        int64
	ContentType string
	Data        []byte
}

// StatusResponse is the pollable snapshot of a screening job
type StatusResponse struct {
	ScreeningJobID       kernel.ScreeningJobID `json:"screening_job_id"`
	JobID                kernel.JobID          `json:"job_id"`
	Status               Status                `json:"status"`
	Message              string                `json:"message"`
	TotalResumes         int                   `json:"total_resumes"`
	ProcessedCount       int                   `json:"processed_count"`
	Progress             int                   `json:"progress"`
	EstimatedMsRemaining *int64                `json:"estimated_ms_remaining,omitempty"`
	ErrorMessage         string                `json:"error_message,omitempty"`
	CreatedAt            time.Time             `json:"created_at"`
	StartedAt            *time.Time            `json:"started_at,omitempty"`
	CompletedAt          *time.Time            `json:"completed_at,omitempty"`
}

// ShortlistRequest names the candidates to add to a completed screening's
// shortlist
type ShortlistRequest struct {
	CandidateIDs []kernel.CandidateID `json:"candidate_ids"`
}

// ShortlistResponse carries the updated shortlist after an append
type ShortlistResponse struct {
	ScreeningJobID        kernel.ScreeningJobID `json:"screening_job_id"`
	ShortlistedCandidates []kernel.CandidateID  `json:"shortlisted_candidates"`
	UpdatedAt             time.Time             `json:"updated_at"`
}
