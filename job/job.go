package job

import (
	"time"

	"github.com/talentrail/screening/pkg/kernel"
)

// JobStatus represents the status of a job posting
type JobStatus string

const (
	JobStatusDraft     JobStatus = "DRAFT"     // Created but not published
	JobStatusPublished JobStatus = "PUBLISHED" // Active and open for screening
	JobStatusClosed    JobStatus = "CLOSED"    // No longer hiring
	JobStatusArchived  JobStatus = "ARCHIVED"  // Archived
)

// Job is a posting with the requirement set resumes are screened against
type Job struct {
	ID           kernel.JobID            `db:"id" json:"id"`
	Title        kernel.JobTitle         `db:"job_title" json:"job_title"`
	Description  kernel.JobDescription   `db:"job_description" json:"job_description"`
	Position     kernel.JobPosition      `db:"job_position" json:"job_position"`
	Requirements []kernel.JobRequirement `db:"requirements" json:"requirements"`
	PostedBy     kernel.UserID           `db:"posted_by" json:"posted_by"`
	Status       JobStatus               `db:"status" json:"status"`
	PublishedAt  *time.Time              `db:"published_at" json:"published_at,omitempty"`
	CreatedAt    time.Time               `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time               `db:"updated_at" json:"updated_at"`
}
