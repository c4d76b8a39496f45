package api

import (
	"github.com/cohen2you/transcripts-project/db"
	"github.com/cohen2you/transcripts-project/vendors"
	"github.com/gin-gonic/gin"
)

// Health handles GET /api/health
func (h *Handlers) Health(c *gin.Context) {
	schema, err := db.GetCurrentVersion()
	if err != nil {
		RespondInternalError(c, "failed to read schema version")
		return
	}

	RespondData(c, gin.H{
		"status": "ok",
		"schema": schema,
		"openai": vendors.GetOpenAIClient().IsConfigured(),
		"search": vendors.GetMeiliClient().IsConfigured(),
	})
}
