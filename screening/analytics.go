package screening

import (
	"time"

	"github.com/talentrail/screening/pkg/kernel"
)

// HistogramBinCount is the number of 10-point buckets in the score histogram
const HistogramBinCount = 10

// MatchDistribution counts scored candidates per match category
type MatchDistribution struct {
	Strong   int `json:"strong"`
	Moderate int `json:"moderate"`
	Weak     int `json:"weak"`
}

// HistogramBin is one 10-point score bucket. The last bin includes 100.
// Percentage is the bin's share of all scored candidates.
type HistogramBin struct {
	Label      string  `json:"label"` // e.g. "70-79", "90-100"
	Min        int     `json:"min"`
	Max        int     `json:"max"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// SkillFrequency is one missing or matched skill with its occurrence count
// and its share of scored candidates
type SkillFrequency struct {
	Skill      string  `json:"skill"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CandidateRank is one entry in the top-candidates list
type CandidateRank struct {
	Rank            int                `json:"rank"`
	CandidateID     kernel.CandidateID `json:"candidate_id"`
	CandidateName   string             `json:"candidate_name"`
	FileName        string             `json:"file_name"`
	MatchPercentage float64            `json:"match_percentage"`
	Category        MatchCategory      `json:"category"`
	TopSkills       []string           `json:"top_skills"`
}

// ProcessingMetrics summarizes batch timing. TotalDurationMs is wall-clock
// time from job creation to the terminal transition.
type ProcessingMetrics struct {
	TotalDurationMs  int64   `json:"total_duration_ms"`
	AvgMsPerResume   float64 `json:"avg_ms_per_resume"`
	AvgScoringTimeMs float64 `json:"avg_scoring_time_ms"`
	MaxScoringTimeMs int64   `json:"max_scoring_time_ms"`
	ResumesPerMinute float64 `json:"resumes_per_minute"`
}

// AnalyticsReport is the aggregate view of a finished screening job.
// TotalCandidates counts scored resumes only; failures are reported separately.
type AnalyticsReport struct {
	ScreeningJobID  kernel.ScreeningJobID `json:"screening_job_id"`
	JobID           kernel.JobID          `json:"job_id"`
	TotalCandidates int                   `json:"total_candidates"`
	ErroredResumes  int                   `json:"errored_resumes"`

	Distribution     MatchDistribution `json:"match_distribution"`
	Histogram        []HistogramBin    `json:"score_histogram"`
	TopMatchedSkills []SkillFrequency  `json:"top_matched_skills"`
	TopMissingSkills []SkillFrequency  `json:"top_missing_skills"`
	TopCandidates    []CandidateRank   `json:"top_candidates"`

	Processing  ProcessingMetrics `json:"processing_metrics"`
	GeneratedAt time.Time         `json:"generated_at"`
}
