package screening

import (
	"time"

	"github.com/talentrail/screening/pkg/kernel"
)

// ResultStatus distinguishes scored resumes from ones that failed processing
type ResultStatus string

const (
	ResultStatusCompleted ResultStatus = "COMPLETED"
	ResultStatusError     ResultStatus = "ERROR"
)

// MatchCategory buckets candidates by match strength
type MatchCategory string

const (
	CategoryStrong   MatchCategory = "STRONG"   // >= 75%
	CategoryModerate MatchCategory = "MODERATE" // >= 50%
	CategoryWeak     MatchCategory = "WEAK"     // < 50%
)

// CategoryFor returns the match category for a percentage
func CategoryFor(pct float64) MatchCategory {
	switch {
	case pct >= 75:
		return CategoryStrong
	case pct >= 50:
		return CategoryModerate
	default:
		return CategoryWeak
	}
}

// MatchResult is the scorer's evaluation of one resume
type MatchResult struct {
	MatchPercentage float64  `json:"match_percentage"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	Recommendation  string   `json:"recommendation"`
}

// Category returns the match category for this result
func (m MatchResult) Category() MatchCategory {
	return CategoryFor(m.MatchPercentage)
}

// ScreeningResult is the stored outcome for one resume in a batch.
// A failed resume still gets a row, with Status ERROR and the failure reason.
type ScreeningResult struct {
	ID             string                `db:"id" json:"id"`
	ScreeningJobID kernel.ScreeningJobID `db:"screening_job_id" json:"screening_job_id"`
	ResumeID       kernel.ResumeID       `db:"resume_id" json:"resume_id"`
	CandidateID    kernel.CandidateID    `db:"candidate_id" json:"candidate_id"`
	CandidateName  string                `db:"candidate_name" json:"candidate_name"`
	FileName       string                `db:"file_name" json:"file_name"`
	Status         ResultStatus          `db:"status" json:"status"`

	MatchPercentage float64  `db:"match_percentage" json:"match_percentage"`
	MatchedSkills   []string `db:"matched_skills" json:"matched_skills"`
	MissingSkills   []string `db:"missing_skills" json:"missing_skills"`
	Strengths       []string `db:"strengths" json:"strengths"`
	Improvements    []string `db:"improvements" json:"improvements"`
	Recommendation  string   `db:"recommendation" json:"recommendation"`

	ErrorMessage  string    `db:"error_message" json:"error_message,omitempty"`
	ScoringTimeMs int64     `db:"scoring_time_ms" json:"scoring_time_ms"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// IsScored reports whether the resume was evaluated successfully
func (r *ScreeningResult) IsScored() bool {
	return r.Status == ResultStatusCompleted
}

// Category returns the match category, meaningful only for scored results
func (r *ScreeningResult) Category() MatchCategory {
	return CategoryFor(r.MatchPercentage)
}
