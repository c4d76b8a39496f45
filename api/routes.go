package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, h *Handlers) {
	// API group
	api := r.Group("/api")

	// Health
	api.GET("/health", h.Health)

	// Cleanup passes (synchronous, one provider call each)
	api.GET("/passes", h.GetPasses)
	api.POST("/passes/:name", h.RunPass)

	// Background jobs (full pipeline, polled by the browser)
	api.POST("/jobs", h.CreateJob)
	api.GET("/jobs", h.ListJobs)
	api.GET("/jobs/:id", h.GetJob)

	// Transcript archive
	api.GET("/transcripts", h.ListTranscripts)
	api.GET("/transcripts/:id", h.GetTranscript)
	api.DELETE("/transcripts/:id", h.DeleteTranscript)

	// Archive search
	api.GET("/search", h.Search)

	// Vendor routes
	api.GET("/vendors/openai/models", h.GetOpenAIModels)
}
