package screeninginfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/talentrail/screening/pkg/kernel"
	"github.com/talentrail/screening/screening"
)

// PostgresResultRepository implements screening.ResultRepository using PostgreSQL
type PostgresResultRepository struct {
	db *sqlx.DB
}

// NewPostgresResultRepository creates a new PostgreSQL result repository
func NewPostgresResultRepository(db *sqlx.DB) *PostgresResultRepository {
	return &PostgresResultRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type resultModel struct {
	ID             string `db:"id"`
	ScreeningJobID string `db:"screening_job_id"`
	ResumeID       string `db:"resume_id"`
	CandidateID    string `db:"candidate_id"`
	CandidateName  string `db:"candidate_name"`
	FileName       string `db:"file_name"`
	Status         string `db:"status"`

	MatchPercentage float64         `db:"match_percentage"`
	MatchedSkills   json.RawMessage `db:"matched_skills"`
	MissingSkills   json.RawMessage `db:"missing_skills"`
	Strengths       json.RawMessage `db:"strengths"`
	Improvements    json.RawMessage `db:"improvements"`
	Recommendation  string          `db:"recommendation"`

	ErrorMessage  string    `db:"error_message"`
	ScoringTimeMs int64     `db:"scoring_time_ms"`
	CreatedAt     time.Time `db:"created_at"`
}

func (m *resultModel) toEntity() (*screening.ScreeningResult, error) {
	entity := &screening.ScreeningResult{
		ID:              m.ID,
		ScreeningJobID:  kernel.ScreeningJobID(m.ScreeningJobID),
		ResumeID:        kernel.ResumeID(m.ResumeID),
		CandidateID:     kernel.CandidateID(m.CandidateID),
		CandidateName:   m.CandidateName,
		FileName:        m.FileName,
		Status:          screening.ResultStatus(m.Status),
		MatchPercentage: m.MatchPercentage,
		Recommendation:  m.Recommendation,
		ErrorMessage:    m.ErrorMessage,
		ScoringTimeMs:   m.ScoringTimeMs,
		CreatedAt:       m.CreatedAt,
	}

	for _, col := range []struct {
		raw  json.RawMessage
		dest *[]string
		name string
	}{
		{m.MatchedSkills, &entity.MatchedSkills, "matched_skills"},
		{m.MissingSkills, &entity.MissingSkills, "missing_skills"},
		{m.Strengths, &entity.Strengths, "strengths"},
		{m.Improvements, &entity.Improvements, "improvements"},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dest); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", col.name, err)
		}
	}

	return entity, nil
}

func fromResultEntity(r *screening.ScreeningResult) (*resultModel, error) {
	model := &resultModel{
		ID:              r.ID,
		ScreeningJobID:  string(r.ScreeningJobID),
		ResumeID:        string(r.ResumeID),
		CandidateID:     string(r.CandidateID),
		CandidateName:   r.CandidateName,
		FileName:        r.FileName,
		Status:          string(r.Status),
		MatchPercentage: r.MatchPercentage,
		Recommendation:  r.Recommendation,
		ErrorMessage:    r.ErrorMessage,
		ScoringTimeMs:   r.ScoringTimeMs,
		CreatedAt:       r.CreatedAt,
	}

	for _, col := range []struct {
		src  []string
		dest *json.RawMessage
		name string
	}{
		{r.MatchedSkills, &model.MatchedSkills, "matched_skills"},
		{r.MissingSkills, &model.MissingSkills, "missing_skills"},
		{r.Strengths, &model.Strengths, "strengths"},
		{r.Improvements, &model.Improvements, "improvements"},
	} {
		data, err := json.Marshal(col.src)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", col.name, err)
		}
		*col.dest = data
	}

	return model, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create stores the outcome for one resume
func (r *PostgresResultRepository) Create(ctx context.Context, result *screening.ScreeningResult) error {
	model, err := fromResultEntity(result)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO screening_results (
			id, screening_job_id, resume_id, candidate_id,
			candidate_name, file_name, status,
			match_percentage, matched_skills, missing_skills,
			strengths, improvements, recommendation,
			error_message, scoring_time_ms, created_at
		) VALUES (
			:id, :screening_job_id, :resume_id, :candidate_id,
			:candidate_name, :file_name, :status,
			:match_percentage, :matched_skills, :missing_skills,
			:strengths, :improvements, :recommendation,
			:error_message, :scoring_time_ms, :created_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to create screening result: %w", err)
	}

	return nil
}

// ListByScreeningJob returns all outcomes for a screening job
func (r *PostgresResultRepository) ListByScreeningJob(ctx context.Context, id kernel.ScreeningJobID) ([]screening.ScreeningResult, error) {
	query := `
		SELECT
			id, screening_job_id, resume_id, candidate_id,
			candidate_name, file_name, status,
			match_percentage, matched_skills, missing_skills,
			strengths, improvements, recommendation,
			error_message, scoring_time_ms, created_at
		FROM screening_results
		WHERE screening_job_id = $1
		ORDER BY created_at ASC, id ASC
	`

	var models []resultModel
	if err := r.db.SelectContext(ctx, &models, query, string(id)); err != nil {
		return nil, fmt.Errorf("failed to list screening results: %w", err)
	}

	entities := make([]screening.ScreeningResult, 0, len(models))
	for _, model := range models {
		entity, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}

	return entities, nil
}
