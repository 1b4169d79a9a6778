package screening

import (
	"time"

	"github.com/talentrail/screening/pkg/kernel"
)

// Status represents the lifecycle state of a screening job
type Status string

const (
	StatusPending    Status = "PENDING"    // Accepted, no resume processed yet
	StatusProcessing Status = "PROCESSING" // At least one resume picked up
	StatusCompleted  Status = "COMPLETED"  // Every resume accounted for
	StatusFailed     Status = "FAILED"     // Aborted before all resumes were processed
)

// ScreeningJob is one batch of resumes evaluated against a job posting
type ScreeningJob struct {
	ID                    kernel.ScreeningJobID `db:"id" json:"id"`
	JobID                 kernel.JobID          `db:"job_id" json:"job_id"`
	RequestedBy           kernel.UserID         `db:"requested_by" json:"requested_by"`
	Status                Status                `db:"status" json:"status"`
	TotalResumes          int                   `db:"total_resumes" json:"total_resumes"`
	ProcessedCount        int                   `db:"processed_count" json:"processed_count"`
	ShortlistedCandidates []kernel.CandidateID  `db:"shortlisted_candidates" json:"shortlisted_candidates"`
	ErrorMessage          string                `db:"error_message" json:"error_message,omitempty"`
	CreatedAt             time.Time             `db:"created_at" json:"created_at"`
	StartedAt             *time.Time            `db:"started_at" json:"started_at,omitempty"`
	CompletedAt           *time.Time            `db:"completed_at" json:"completed_at,omitempty"`
	UpdatedAt             time.Time             `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsTerminal reports whether the job has reached a final state
func (s *ScreeningJob) IsTerminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusFailed
}

// IsComplete reports whether every resume in the batch has been processed
func (s *ScreeningJob) IsComplete() bool {
	return s.ProcessedCount >= s.TotalResumes
}

// ProgressPercentage returns processed over total as a whole percentage
func (s *ScreeningJob) ProgressPercentage() int {
	if s.TotalResumes == 0 {
		return 0
	}
	return s.ProcessedCount * 100 / s.TotalResumes
}

// RemainingCount returns how many resumes are still queued or in flight
func (s *ScreeningJob) RemainingCount() int {
	remaining := s.TotalResumes - s.ProcessedCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AppendShortlist adds candidate IDs to the shortlist, preserving the order
// in which candidates were first added and dropping duplicates.
func (s *ScreeningJob) AppendShortlist(candidateIDs []kernel.CandidateID) {
	seen := make(map[kernel.CandidateID]bool, len(s.ShortlistedCandidates)+len(candidateIDs))
	for _, id := range s.ShortlistedCandidates {
		seen[id] = true
	}
	for _, id := range candidateIDs {
		if id.IsEmpty() || seen[id] {
			continue
		}
		seen[id] = true
		s.ShortlistedCandidates = append(s.ShortlistedCandidates, id)
	}
}
