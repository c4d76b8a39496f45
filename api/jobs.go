package api

import (
	"strconv"

	"github.com/cohen2you/transcripts-project/db"
	"github.com/cohen2you/transcripts-project/log"
	"github.com/cohen2you/transcripts-project/transcript"
	"github.com/gin-gonic/gin"
)

// CreateJob handles POST /api/jobs — submit the pass pipeline as a
// background job. The browser polls GET /api/jobs/:id for the result.
func (h *Handlers) CreateJob(c *gin.Context) {
	var req passRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body")
		return
	}
	if !req.validate(c) {
		return
	}

	passes := req.Passes
	if len(passes) == 0 {
		passes = transcript.DefaultPassNames()
	}
	if err := transcript.ValidatePassNames(passes); err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	job := &db.Job{
		Passes: passes,
		Input:  req.Text,
	}
	if err := db.CreateJob(job); err != nil {
		log.Error().Err(err).Msg("failed to create job")
		RespondInternalError(c, "Failed to create job")
		return
	}

	// Queue full is fine: the supervisor picks pending jobs up later
	h.worker.Enqueue(job.ID)

	RespondAccepted(c, gin.H{
		"id":     job.ID,
		"status": job.Status,
	})
}

// GetJob handles GET /api/jobs/:id — the polling endpoint
func (h *Handlers) GetJob(c *gin.Context) {
	job, err := db.GetJobByID(c.Param("id"))
	if err != nil {
		log.Error().Err(err).Str("job", c.Param("id")).Msg("failed to load job")
		RespondInternalError(c, "Failed to load job")
		return
	}
	if job == nil {
		RespondNotFound(c, "Job not found")
		return
	}

	RespondData(c, job)
}

// ListJobs handles GET /api/jobs
func (h *Handlers) ListJobs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	jobs, err := db.ListRecentJobs(limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list jobs")
		RespondInternalError(c, "Failed to list jobs")
		return
	}

	RespondList(c, jobs)
}
