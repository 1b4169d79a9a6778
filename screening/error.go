package screening

import (
	"net/http"

	"github.com/talentrail/screening/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("SCREENING")

// Error codes
var (
	CodeBatchValidationFailed = ErrRegistry.Register("BATCH_VALIDATION_FAILED", errx.TypeValidation, http.StatusBadRequest, "Batch failed validation")
	CodeJobNotFound           = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Screening job not found")
	CodeJobNotTerminal        = ErrRegistry.Register("JOB_NOT_TERMINAL", errx.TypeBusiness, http.StatusUnprocessableEntity, "Screening job has not finished yet")
	CodeUploadFailed          = ErrRegistry.Register("UPLOAD_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to store uploaded resume")
	CodePersistFailed         = ErrRegistry.Register("PERSIST_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to persist screening job")
	CodeEnqueueFailed         = ErrRegistry.Register("ENQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to enqueue scoring task")
	CodeResultsUnavailable    = ErrRegistry.Register("RESULTS_UNAVAILABLE", errx.TypeInternal, http.StatusInternalServerError, "Failed to load screening results")
)

// Helper functions
func ErrBatchValidationFailed(violations []Violation) *errx.Error {
	return ErrRegistry.New(CodeBatchValidationFailed).
		WithDetail("violations", violations)
}

func ErrScreeningJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrJobNotTerminal(status Status) *errx.Error {
	return ErrRegistry.New(CodeJobNotTerminal).
		WithDetail("current_status", status)
}

func ErrUploadFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeUploadFailed, cause)
}

func ErrPersistFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodePersistFailed, cause)
}

func ErrEnqueueFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeEnqueueFailed, cause)
}

func ErrResultsUnavailable(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeResultsUnavailable, cause)
}
