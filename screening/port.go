package screening

import (
	"context"
	"time"

	"github.com/talentrail/screening/pkg/kernel"
)

// JobRepository persists screening jobs and drives the state machine.
// The CAS-style methods report via their bool return whether this caller
// performed the transition; concurrent workers rely on that for
// exactly-once finalization.
type JobRepository interface {
	// Create persists a new screening job in PENDING state
	Create(ctx context.Context, job *ScreeningJob) error

	// GetByID retrieves a screening job by ID
	GetByID(ctx context.Context, id kernel.ScreeningJobID) (*ScreeningJob, error)

	// List retrieves screening jobs, most recent first
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[ScreeningJob], error)

	// MarkProcessing transitions PENDING to PROCESSING and stamps started_at.
	// Returns false when the job was already past PENDING.
	MarkProcessing(ctx context.Context, id kernel.ScreeningJobID) (bool, error)

	// IncrementProcessed bumps processed_count and returns the new value
	IncrementProcessed(ctx context.Context, id kernel.ScreeningJobID) (int, error)

	// FinishIfProcessing transitions PROCESSING to the given terminal status.
	// Returns true only for the caller that performed the transition.
	FinishIfProcessing(ctx context.Context, id kernel.ScreeningJobID, status Status, errorMessage string) (bool, error)

	// MarkStalledAsFailed fails PENDING and PROCESSING jobs idle longer than
	// maxAge and forces processed_count to total_resumes.
	// Returns how many were failed.
	MarkStalledAsFailed(ctx context.Context, maxAge time.Duration) (int, error)

	// UpdateShortlist replaces the stored shortlist for a job
	UpdateShortlist(ctx context.Context, id kernel.ScreeningJobID, candidateIDs []kernel.CandidateID) error
}

// ResultRepository persists per-resume screening outcomes
type ResultRepository interface {
	// Create stores the outcome for one resume
	Create(ctx context.Context, result *ScreeningResult) error

	// ListByScreeningJob returns all outcomes for a screening job,
	// ordered by creation time
	ListByScreeningJob(ctx context.Context, id kernel.ScreeningJobID) ([]ScreeningResult, error)
}

// TaskQueue carries scoring tasks from intake to workers
type TaskQueue interface {
	// Enqueue pushes one task onto the queue
	Enqueue(ctx context.Context, id kernel.ScreeningJobID, payload any) error

	// Dequeue pops one task, blocking up to timeout.
	// Returns (nil, nil) when no task arrived in time.
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)

	// Size returns the number of queued tasks
	Size(ctx context.Context) (int64, error)

	// Ping checks queue connectivity
	Ping(ctx context.Context) error
}

// ReportCache stores computed analytics reports keyed by screening job
type ReportCache interface {
	// Get returns the cached report, or (nil, nil) on a miss
	Get(ctx context.Context, id kernel.ScreeningJobID) (*AnalyticsReport, error)

	// Set stores a report with a TTL
	Set(ctx context.Context, id kernel.ScreeningJobID, report *AnalyticsReport, ttl time.Duration) error
}

// Scorer evaluates resume text against job requirements
type Scorer interface {
	Score(ctx context.Context, resumeText string, requirements []kernel.JobRequirement) (*MatchResult, error)
}

// TextExtractor pulls plain text out of an uploaded document
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}
