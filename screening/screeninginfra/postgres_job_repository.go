package screeninginfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/talentrail/screening/pkg/kernel"
	"github.com/talentrail/screening/screening"
)

// PostgresJobRepository implements screening.JobRepository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL screening job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type screeningJobModel struct {
	ID                    string          `db:"id"`
	JobID                 string          `db:"job_id"`
	RequestedBy           string          `db:"requested_by"`
	Status                string          `db:"status"`
	TotalResumes          int             `db:"total_resumes"`
	ProcessedCount        int             `db:"processed_count"`
	ShortlistedCandidates json.RawMessage `db:"shortlisted_candidates"`
	ErrorMessage          string          `db:"error_message"`
	CreatedAt             time.Time       `db:"created_at"`
	StartedAt             *time.Time      `db:"started_at"`
	CompletedAt           *time.Time      `db:"completed_at"`
	UpdatedAt             time.Time       `db:"updated_at"`
}

func (m *screeningJobModel) toEntity() (*screening.ScreeningJob, error) {
	var shortlist []kernel.CandidateID
	if len(m.ShortlistedCandidates) > 0 {
		if err := json.Unmarshal(m.ShortlistedCandidates, &shortlist); err != nil {
			return nil, fmt.Errorf("failed to unmarshal shortlist: %w", err)
		}
	}

	return &screening.ScreeningJob{
		ID:                    kernel.ScreeningJobID(m.ID),
		JobID:                 kernel.JobID(m.JobID),
		RequestedBy:           kernel.UserID(m.RequestedBy),
		Status:                screening.Status(m.Status),
		TotalResumes:          m.TotalResumes,
		ProcessedCount:        m.ProcessedCount,
		ShortlistedCandidates: shortlist,
		ErrorMessage:          m.ErrorMessage,
		CreatedAt:             m.CreatedAt,
		StartedAt:             m.StartedAt,
		CompletedAt:           m.CompletedAt,
		UpdatedAt:             m.UpdatedAt,
	}, nil
}

func fromJobEntity(s *screening.ScreeningJob) (*screeningJobModel, error) {
	shortlist := s.ShortlistedCandidates
	if shortlist == nil {
		shortlist = []kernel.CandidateID{}
	}
	shortlistJSON, err := json.Marshal(shortlist)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal shortlist: %w", err)
	}

	return &screeningJobModel{
		ID:                    string(s.ID),
		JobID:                 string(s.JobID),
		RequestedBy:           string(s.RequestedBy),
		Status:                string(s.Status),
		TotalResumes:          s.TotalResumes,
		ProcessedCount:        s.ProcessedCount,
		ShortlistedCandidates: shortlistJSON,
		ErrorMessage:          s.ErrorMessage,
		CreatedAt:             s.CreatedAt,
		StartedAt:             s.StartedAt,
		CompletedAt:           s.CompletedAt,
		UpdatedAt:             s.UpdatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create persists a new screening job
func (r *PostgresJobRepository) Create(ctx context.Context, jobEntity *screening.ScreeningJob) error {
	model, err := fromJobEntity(jobEntity)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO screening_jobs (
			id, job_id, requested_by, status,
			total_resumes, processed_count, shortlisted_candidates, error_message,
			created_at, started_at, completed_at, updated_at
		) VALUES (
			:id, :job_id, :requested_by, :status,
			:total_resumes, :processed_count, :shortlisted_candidates, :error_message,
			:created_at, :started_at, :completed_at, :updated_at
		)
	`

	_, err = r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return fmt.Errorf("screening job %s already exists: %w", jobEntity.ID, err)
		}
		return fmt.Errorf("failed to create screening job: %w", err)
	}

	return nil
}

// GetByID retrieves a screening job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.ScreeningJobID) (*screening.ScreeningJob, error) {
	query := `
		SELECT
			id, job_id, requested_by, status,
			total_resumes, processed_count, shortlisted_candidates, error_message,
			created_at, started_at, completed_at, updated_at
		FROM screening_jobs
		WHERE id = $1
	`

	var model screeningJobModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, screening.ErrScreeningJobNotFound()
		}
		return nil, fmt.Errorf("failed to get screening job by id: %w", err)
	}

	return model.toEntity()
}

// List retrieves screening jobs, most recent first
func (r *PostgresJobRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[screening.ScreeningJob], error) {
	pagination = pagination.Normalize()

	var total int
	countQuery := `SELECT COUNT(*) FROM screening_jobs`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, fmt.Errorf("failed to count screening jobs: %w", err)
	}

	query := `
		SELECT
			id, job_id, requested_by, status,
			total_resumes, processed_count, shortlisted_candidates, error_message,
			created_at, started_at, completed_at, updated_at
		FROM screening_jobs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var models []screeningJobModel
	err := r.db.SelectContext(ctx, &models, query, pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list screening jobs: %w", err)
	}

	entities := make([]screening.ScreeningJob, 0, len(models))
	for _, model := range models {
		entity, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}

	result := kernel.NewPaginated(entities, pagination.Page, pagination.PageSize, total)
	return &result, nil
}

// MarkProcessing transitions PENDING to PROCESSING and stamps started_at
func (r *PostgresJobRepository) MarkProcessing(ctx context.Context, id kernel.ScreeningJobID) (bool, error) {
	query := `
		UPDATE screening_jobs
		SET status = $1,
		    started_at = $2,
		    updated_at = $2
		WHERE id = $3 AND status = $4
	`

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		string(screening.StatusProcessing), now, string(id), string(screening.StatusPending))
	if err != nil {
		return false, fmt.Errorf("failed to mark screening job processing: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows == 1, nil
}

// IncrementProcessed bumps processed_count and returns the new value
func (r *PostgresJobRepository) IncrementProcessed(ctx context.Context, id kernel.ScreeningJobID) (int, error) {
	query := `
		UPDATE screening_jobs
		SET processed_count = processed_count + 1,
		    updated_at = $1
		WHERE id = $2
		RETURNING processed_count
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, time.Now(), string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, screening.ErrScreeningJobNotFound()
		}
		return 0, fmt.Errorf("failed to increment processed count: %w", err)
	}

	return count, nil
}

// FinishIfProcessing transitions PROCESSING to a terminal status exactly once
func (r *PostgresJobRepository) FinishIfProcessing(ctx context.Context, id kernel.ScreeningJobID, status screening.Status, errorMessage string) (bool, error) {
	query := `
		UPDATE screening_jobs
		SET status = $1,
		    error_message = $2,
		    completed_at = $3,
		    updated_at = $3
		WHERE id = $4 AND status = $5
	`

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		string(status), errorMessage, now, string(id), string(screening.StatusProcessing))
	if err != nil {
		return false, fmt.Errorf("failed to finish screening job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows == 1, nil
}

// MarkStalledAsFailed fails PENDING and PROCESSING jobs that have not advanced
// within maxAge. processed_count is forced to total_resumes so terminal jobs
// always report full counts.
func (r *PostgresJobRepository) MarkStalledAsFailed(ctx context.Context, maxAge time.Duration) (int, error) {
	query := `
		UPDATE screening_jobs
		SET status = $1,
		    error_message = 'screening stalled and was abandoned',
		    processed_count = total_resumes,
		    completed_at = $2,
		    updated_at = $2
		WHERE status IN ($3, $4) AND updated_at < $5
	`

	now := time.Now()
	cutoff := now.Add(-maxAge)
	result, err := r.db.ExecContext(ctx, query,
		string(screening.StatusFailed), now,
		string(screening.StatusPending), string(screening.StatusProcessing), cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to mark stalled screening jobs: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}

// UpdateShortlist replaces the stored shortlist for a job
func (r *PostgresJobRepository) UpdateShortlist(ctx context.Context, id kernel.ScreeningJobID, candidateIDs []kernel.CandidateID) error {
	if candidateIDs == nil {
		candidateIDs = []kernel.CandidateID{}
	}
	shortlistJSON, err := json.Marshal(candidateIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal shortlist: %w", err)
	}

	query := `
		UPDATE screening_jobs
		SET shortlisted_candidates = $1,
		    updated_at = $2
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, shortlistJSON, time.Now(), string(id))
	if err != nil {
		return fmt.Errorf("failed to update shortlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return screening.ErrScreeningJobNotFound()
	}

	return nil
}
