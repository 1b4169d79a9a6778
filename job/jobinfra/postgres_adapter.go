package jobinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/talentrail/screening/job"
	"github.com/talentrail/screening/pkg/kernel"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type jobModel struct {
	ID             string          `db:"id"`
	JobTitle       string          `db:"job_title"`
	JobDescription string          `db:"job_description"`
	JobPosition    string          `db:"job_position"`
	Requirements   json.RawMessage `db:"requirements"`
	PostedBy       string          `db:"posted_by"`
	Status         string          `db:"status"`
	PublishedAt    *time.Time      `db:"published_at"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *jobModel) toEntity() (*job.Job, error) {
	var requirements []kernel.JobRequirement
	if len(m.Requirements) > 0 {
		if err := json.Unmarshal(m.Requirements, &requirements); err != nil {
			return nil, fmt.Errorf("failed to unmarshal requirements: %w", err)
		}
	}

	return &job.Job{
		ID:           kernel.JobID(m.ID),
		Title:        kernel.JobTitle(m.JobTitle),
		Description:  kernel.JobDescription(m.JobDescription),
		Position:     kernel.JobPosition(m.JobPosition),
		Requirements: requirements,
		PostedBy:     kernel.UserID(m.PostedBy),
		Status:       job.JobStatus(m.Status),
		PublishedAt:  m.PublishedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	query := `
		SELECT
			id, job_title, job_description, job_position,
			requirements, posted_by, status,
			published_at, created_at, updated_at
		FROM jobs
		WHERE id = $1
	`

	var model jobModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, job.ErrJobNotFound()
		}
		return nil, fmt.Errorf("failed to get job by id: %w", err)
	}

	return model.toEntity()
}

// Exists checks if a job exists by ID
func (r *PostgresJobRepository) Exists(ctx context.Context, id kernel.JobID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, string(id))
	if err != nil {
		return false, fmt.Errorf("failed to check job existence: %w", err)
	}

	return exists, nil
}
