package screeningapi

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/talentrail/screening/pkg/iam/auth"
	"github.com/talentrail/screening/pkg/kernel"
	"github.com/talentrail/screening/screening"
	"github.com/talentrail/screening/screening/screeningsrv"
)

type Handlers struct {
	service *screeningsrv.Service
}

func NewHandlers(service *screeningsrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

func (h *Handlers) RegisterRoutes(app *fiber.App, authMiddleware *auth.UnifiedAuthMiddleware) {
	screenings := app.Group("/api/v1/screenings", authMiddleware.Authenticate())

	screenings.Post("/", h.CreateScreening)               // Submit a batch (ASYNC)
	screenings.Get("/jobs", h.ListScreenings)             // List screening jobs
	screenings.Get("/jobs/:job_id", h.GetStatus)          // Poll status
	screenings.Get("/jobs/:job_id/results", h.GetResults) // Per-resume outcomes
	screenings.Get("/jobs/:job_id/analytics", h.GetAnalytics)
	screenings.Post("/jobs/:job_id/shortlist", h.Shortlist)
}

// CreateScreening accepts a multipart batch of resumes for a job posting
// POST /api/v1/screenings  (job_id + files[])
func (h *Handlers) CreateScreening(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingAPIKey()
	}

	jobID := kernel.JobID(c.FormValue("job_id"))
	if jobID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_id is required",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "multipart form is required",
		})
	}

	fileHeaders := form.File["files"]
	files := make([]screening.UploadedFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to open uploaded file %s", fh.Filename),
			})
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to read uploaded file %s", fh.Filename),
			})
		}

		files = append(files, screening.UploadedFile{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	req := screening.CreateScreeningRequest{
		JobID:       jobID,
		RequestedBy: authCtx.UserID,
		Files:       files,
	}

	status, err := h.service.CreateScreening(c.Context(), req)
	if err != nil {
		return err
	}

	// 202 Accepted with a pollable status URL
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message":    "Screening accepted, processing started",
		"screening":  status,
		"status_url": fmt.Sprintf("/api/v1/screenings/jobs/%s", status.ScreeningJobID),
	})
}

// GetStatus returns the current snapshot of a screening job
// GET /api/v1/screenings/jobs/:job_id
func (h *Handlers) GetStatus(c *fiber.Ctx) error {
	id := kernel.ScreeningJobID(c.Params("job_id"))
	if id.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid screening job ID",
		})
	}

	status, err := h.service.GetStatus(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(status)
}

// ListScreenings lists screening jobs, most recent first
// GET /api/v1/screenings/jobs?page=1&page_size=20
func (h *Handlers) ListScreenings(c *fiber.Ctx) error {
	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	jobs, err := h.service.ListScreenings(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// GetResults returns per-resume outcomes, partial while still running
// GET /api/v1/screenings/jobs/:job_id/results
func (h *Handlers) GetResults(c *fiber.Ctx) error {
	id := kernel.ScreeningJobID(c.Params("job_id"))
	if id.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid screening job ID",
		})
	}

	results, err := h.service.GetResults(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"screening_job_id": id,
		"results":          results,
	})
}

// GetAnalytics returns the aggregate report for a terminal screening job
// GET /api/v1/screenings/jobs/:job_id/analytics
func (h *Handlers) GetAnalytics(c *fiber.Ctx) error {
	id := kernel.ScreeningJobID(c.Params("job_id"))
	if id.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid screening job ID",
		})
	}

	report, err := h.service.GetAnalytics(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(report)
}

// Shortlist appends candidates to a completed screening's shortlist
// POST /api/v1/screenings/jobs/:job_id/shortlist
// Body: {"candidate_ids": ["..."]}
func (h *Handlers) Shortlist(c *fiber.Ctx) error {
	id := kernel.ScreeningJobID(c.Params("job_id"))
	if id.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid screening job ID",
		})
	}

	var req screening.ShortlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	response, err := h.service.Shortlist(c.Context(), id, req)
	if err != nil {
		return err
	}

	return c.JSON(response)
}
