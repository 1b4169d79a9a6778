package job

import (
	"context"

	"github.com/talentrail/screening/pkg/kernel"
)

// Repository is the read surface the screening pipeline needs from job
// postings. Posting CRUD lives outside this service.
type Repository interface {
	// GetByID retrieves a job by ID
	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)

	// Exists checks if a job exists by ID
	Exists(ctx context.Context, id kernel.JobID) (bool, error)
}
