package screeningsrv

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/talentrail/screening/job"
	"github.com/talentrail/screening/pkg/fsx"
	"github.com/talentrail/screening/pkg/kernel"
	"github.com/talentrail/screening/pkg/logx"
	"github.com/talentrail/screening/screening"
)

const reportCacheTTL = 24 * time.Hour

// Service orchestrates batch intake, scoring and reporting
type Service struct {
	jobs      screening.JobRepository
	results   screening.ResultRepository
	postings  job.Repository
	queue     screening.TaskQueue
	cache     screening.ReportCache
	scorer    screening.Scorer
	extractor screening.TextExtractor
	files     fsx.FileSystem
}

func NewService(
	jobs screening.JobRepository,
	results screening.ResultRepository,
	postings job.Repository,
	queue screening.TaskQueue,
	cache screening.ReportCache,
	scorer screening.Scorer,
	extractor screening.TextExtractor,
	files fsx.FileSystem,
) *Service {
	return &Service{
		jobs:      jobs,
		results:   results,
		postings:  postings,
		queue:     queue,
		cache:     cache,
		scorer:    scorer,
		extractor: extractor,
		files:     files,
	}
}

// ============================================================================
// Intake
// ============================================================================

// CreateScreening validates a batch, persists the screening job and enqueues
// one scoring task per resume. Validation reports every violation at once.
func (s *Service) CreateScreening(ctx context.Context, req screening.CreateScreeningRequest) (*screening.StatusResponse, error) {
	jobExists, err := s.postings.Exists(ctx, req.JobID)
	if err != nil {
		return nil, screening.ErrPersistFailed(err).
			WithDetail("job_id", req.JobID)
	}

	batch := make([]screening.BatchFile, 0, len(req.Files))
	for _, f := range req.Files {
		batch = append(batch, screening.BatchFile{
			Name:        f.Name,
			Size:        f.Size,
			ContentType: f.ContentType,
		})
	}

	if violations := screening.ValidateBatch(jobExists, batch); len(violations) > 0 {
		return nil, screening.ErrBatchValidationFailed(violations).
			WithDetail("job_id", req.JobID)
	}

	now := time.Now()
	screeningJob := &screening.ScreeningJob{
		ID:           kernel.NewScreeningJobID(uuid.NewString()),
		JobID:        req.JobID,
		RequestedBy:  req.RequestedBy,
		Status:       screening.StatusPending,
		TotalResumes: len(req.Files),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Store files before the job row so an accepted job never references
	// a missing upload.
	tasks := make([]screening.ScoringTask, 0, len(req.Files))
	for _, f := range req.Files {
		resumeID := kernel.NewResumeID(uuid.NewString())
		candidateID := kernel.NewCandidateID(uuid.NewString())
		path := s.files.Join("screenings", screeningJob.ID.String(), resumeID.String()+".pdf")

		if err := s.files.WriteFile(ctx, path, f.Data); err != nil {
			return nil, screening.ErrUploadFailed(err).
				WithDetail("file_name", f.Name)
		}

		tasks = append(tasks, screening.ScoringTask{
			ScreeningJobID: screeningJob.ID,
			JobID:          req.JobID,
			ResumeID:       resumeID,
			CandidateID:    candidateID,
			FileName:       f.Name,
			FilePath:       path,
			ContentType:    f.ContentType,
			EnqueuedAt:     now,
		})
	}

	if err := s.jobs.Create(ctx, screeningJob); err != nil {
		return nil, screening.ErrPersistFailed(err).
			WithDetail("job_id", req.JobID)
	}

	for _, task := range tasks {
		if err := s.queue.Enqueue(ctx, screeningJob.ID, task); err != nil {
			// Tasks already queued will still be processed; the stalled
			// sweep fails the job if the batch never completes.
			return nil, screening.ErrEnqueueFailed(err).
				WithDetail("screening_job_id", screeningJob.ID).
				WithDetail("file_name", task.FileName)
		}
	}

	logx.Infof("Screening accepted: ID=%s, JobID=%s, Resumes=%d",
		screeningJob.ID, req.JobID, screeningJob.TotalResumes)

	return s.statusResponse(screeningJob), nil
}

// ============================================================================
// Worker path
// ============================================================================

// ProcessScoringTask evaluates one resume. Failures are isolated: the task
// always produces a result row and advances the processed count, so one bad
// resume never blocks the batch.
func (s *Service) ProcessScoringTask(ctx context.Context, task *screening.ScoringTask) error {
	started, err := s.jobs.MarkProcessing(ctx, task.ScreeningJobID)
	if err != nil {
		return fmt.Errorf("mark screening %s processing: %w", task.ScreeningJobID, err)
	}
	if started {
		logx.Infof("Screening started: ID=%s", task.ScreeningJobID)
	}

	result := &screening.ScreeningResult{
		ID:             uuid.NewString(),
		ScreeningJobID: task.ScreeningJobID,
		ResumeID:       task.ResumeID,
		CandidateID:    task.CandidateID,
		CandidateName:  screening.CandidateNameFromFile(task.FileName),
		FileName:       task.FileName,
		CreatedAt:      time.Now(),
	}

	match, scoringTime, scoreErr := s.scoreResume(ctx, task)
	if scoreErr != nil {
		result.Status = screening.ResultStatusError
		result.ErrorMessage = scoreErr.Error()
		logx.Warnf("Resume failed: Screening=%s, File=%s, Error=%v",
			task.ScreeningJobID, task.FileName, scoreErr)
	} else {
		result.Status = screening.ResultStatusCompleted
		result.MatchPercentage = match.MatchPercentage
		result.MatchedSkills = match.MatchedSkills
		result.MissingSkills = match.MissingSkills
		result.Strengths = match.Strengths
		result.Improvements = match.Improvements
		result.Recommendation = match.Recommendation
		result.ScoringTimeMs = scoringTime.Milliseconds()
	}

	if err := s.results.Create(ctx, result); err != nil {
		// The count still advances so the batch can finish; the resume
		// shows up as missing from results rather than wedging the job.
		logx.Errorf("Failed to persist result: Screening=%s, File=%s, Error=%v",
			task.ScreeningJobID, task.FileName, err)
	}

	count, err := s.jobs.IncrementProcessed(ctx, task.ScreeningJobID)
	if err != nil {
		return fmt.Errorf("increment processed for %s: %w", task.ScreeningJobID, err)
	}

	screeningJob, err := s.jobs.GetByID(ctx, task.ScreeningJobID)
	if err != nil {
		return fmt.Errorf("reload screening %s: %w", task.ScreeningJobID, err)
	}

	if count >= screeningJob.TotalResumes {
		s.finalize(ctx, screeningJob)
	}

	return nil
}

// scoreResume runs the read-extract-score pipeline for one task.
// The returned duration covers the scorer call only.
func (s *Service) scoreResume(ctx context.Context, task *screening.ScoringTask) (*screening.MatchResult, time.Duration, error) {
	posting, err := s.postings.GetByID(ctx, task.JobID)
	if err != nil {
		return nil, 0, fmt.Errorf("load job posting: %w", err)
	}

	data, err := s.files.ReadFile(ctx, task.FilePath)
	if err != nil {
		return nil, 0, fmt.Errorf("read resume file: %w", err)
	}

	text, err := s.extractor.Extract(ctx, data)
	if err != nil {
		return nil, 0, fmt.Errorf("extract resume text: %w", err)
	}

	start := time.Now()
	match, err := s.scorer.Score(ctx, text, posting.Requirements)
	elapsed := time.Since(start)
	if err != nil {
		return nil, 0, fmt.Errorf("score resume: %w", err)
	}

	return match, elapsed, nil
}

// finalize moves the job to its terminal state exactly once: COMPLETED when
// at least one resume was scored, FAILED when every resume errored. Only the
// caller whose CAS update lands computes and caches the analytics report.
func (s *Service) finalize(ctx context.Context, screeningJob *screening.ScreeningJob) {
	results, err := s.results.ListByScreeningJob(ctx, screeningJob.ID)
	if err != nil {
		logx.Errorf("Failed to load results to finalize %s: %v", screeningJob.ID, err)
		return
	}

	terminal := screening.StatusFailed
	errorMessage := "all resumes failed to process"
	for _, r := range results {
		if r.IsScored() {
			terminal = screening.StatusCompleted
			errorMessage = ""
			break
		}
	}

	claimed, err := s.jobs.FinishIfProcessing(ctx, screeningJob.ID, terminal, errorMessage)
	if err != nil {
		logx.Errorf("Failed to finalize screening %s: %v", screeningJob.ID, err)
		return
	}
	if !claimed {
		return
	}

	logx.Infof("Screening finished: ID=%s, Status=%s, Resumes=%d",
		screeningJob.ID, terminal, screeningJob.TotalResumes)

	finished, err := s.jobs.GetByID(ctx, screeningJob.ID)
	if err != nil {
		logx.Errorf("Failed to reload finished screening %s: %v", screeningJob.ID, err)
		return
	}

	report := BuildReport(finished, results, time.Now())
	if err := s.cache.Set(ctx, screeningJob.ID, report, reportCacheTTL); err != nil {
		logx.Warnf("Failed to cache report for %s: %v", screeningJob.ID, err)
	}
}

// FailStalledJobs abandons screenings that stopped advancing
func (s *Service) FailStalledJobs(ctx context.Context, maxAge time.Duration) (int, error) {
	count, err := s.jobs.MarkStalledAsFailed(ctx, maxAge)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logx.Warnf("Marked %d stalled screenings as failed", count)
	}
	return count, nil
}

// ============================================================================
// Queries
// ============================================================================

// GetStatus returns the pollable snapshot for a screening job.
// Safe to call repeatedly; terminal states never change.
func (s *Service) GetStatus(ctx context.Context, id kernel.ScreeningJobID) (*screening.StatusResponse, error) {
	screeningJob, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.statusResponse(screeningJob), nil
}

// ListScreenings returns screening jobs, most recent first
func (s *Service) ListScreenings(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[screening.ScreeningJob], error) {
	return s.jobs.List(ctx, pagination)
}

// GetResults returns per-resume outcomes. Partial results are visible while
// the job is still running.
func (s *Service) GetResults(ctx context.Context, id kernel.ScreeningJobID) ([]screening.ScreeningResult, error) {
	if _, err := s.jobs.GetByID(ctx, id); err != nil {
		return nil, err
	}

	results, err := s.results.ListByScreeningJob(ctx, id)
	if err != nil {
		return nil, screening.ErrResultsUnavailable(err).
			WithDetail("screening_job_id", id)
	}
	return results, nil
}

// GetAnalytics returns the aggregate report for a terminal screening job,
// serving the cached copy when one exists.
func (s *Service) GetAnalytics(ctx context.Context, id kernel.ScreeningJobID) (*screening.AnalyticsReport, error) {
	screeningJob, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !screeningJob.IsTerminal() {
		return nil, screening.ErrJobNotTerminal(screeningJob.Status).
			WithDetail("screening_job_id", id)
	}

	if cached, err := s.cache.Get(ctx, id); err != nil {
		logx.Warnf("Report cache read failed for %s: %v", id, err)
	} else if cached != nil {
		return cached, nil
	}

	results, err := s.results.ListByScreeningJob(ctx, id)
	if err != nil {
		return nil, screening.ErrResultsUnavailable(err).
			WithDetail("screening_job_id", id)
	}

	report := BuildReport(screeningJob, results, time.Now())
	if err := s.cache.Set(ctx, id, report, reportCacheTTL); err != nil {
		logx.Warnf("Failed to cache report for %s: %v", id, err)
	}
	return report, nil
}

// Shortlist appends candidates to a completed screening's shortlist.
// Duplicates are dropped and the order candidates were first added is kept.
func (s *Service) Shortlist(ctx context.Context, id kernel.ScreeningJobID, req screening.ShortlistRequest) (*screening.ShortlistResponse, error) {
	screeningJob, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if screeningJob.Status != screening.StatusCompleted {
		return nil, screening.ErrJobNotTerminal(screeningJob.Status).
			WithDetail("screening_job_id", id)
	}

	screeningJob.AppendShortlist(req.CandidateIDs)

	if err := s.jobs.UpdateShortlist(ctx, id, screeningJob.ShortlistedCandidates); err != nil {
		return nil, screening.ErrPersistFailed(err).
			WithDetail("screening_job_id", id)
	}

	return &screening.ShortlistResponse{
		ScreeningJobID:        id,
		ShortlistedCandidates: screeningJob.ShortlistedCandidates,
		UpdatedAt:             time.Now(),
	}, nil
}

// ============================================================================
// Helpers
// ============================================================================

func (s *Service) statusResponse(j *screening.ScreeningJob) *screening.StatusResponse {
	resp := &screening.StatusResponse{
		ScreeningJobID: j.ID,
		JobID:          j.JobID,
		Status:         j.Status,
		TotalResumes:   j.TotalResumes,
		ProcessedCount: j.ProcessedCount,
		Progress:       j.ProgressPercentage(),
		ErrorMessage:   j.ErrorMessage,
		CreatedAt:      j.CreatedAt,
		StartedAt:      j.StartedAt,
		CompletedAt:    j.CompletedAt,
	}

	switch j.Status {
	case screening.StatusPending:
		resp.Message = "Screening queued and waiting to start"
	case screening.StatusProcessing:
		resp.Message = fmt.Sprintf("Screening resumes: %d of %d processed", j.ProcessedCount, j.TotalResumes)
		resp.EstimatedMsRemaining = estimateRemaining(j, time.Now())
	case screening.StatusCompleted:
		resp.Message = "Screening completed"
	case screening.StatusFailed:
		resp.Message = "Screening failed"
		if j.ErrorMessage != "" {
			resp.Message = j.ErrorMessage
		}
	}
	return resp
}

// estimateRemaining projects remaining time from the observed per-resume pace
func estimateRemaining(j *screening.ScreeningJob, now time.Time) *int64 {
	if j.StartedAt == nil || j.ProcessedCount == 0 {
		return nil
	}
	elapsed := now.Sub(*j.StartedAt)
	if elapsed <= 0 {
		return nil
	}
	perResume := elapsed / time.Duration(j.ProcessedCount)
	remaining := (perResume * time.Duration(j.RemainingCount())).Milliseconds()
	return &remaining
}
