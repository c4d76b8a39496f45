package api

import (
	"strconv"

	"github.com/cohen2you/transcripts-project/db"
	"github.com/cohen2you/transcripts-project/log"
	"github.com/cohen2you/transcripts-project/vendors"
	"github.com/gin-gonic/gin"
)

// ListTranscripts handles GET /api/transcripts
func (h *Handlers) ListTranscripts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	transcripts, err := db.ListTranscripts(limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list transcripts")
		RespondInternalError(c, "Failed to list transcripts")
		return
	}

	RespondList(c, transcripts)
}

// DeleteTranscript handles DELETE /api/transcripts/:id
func (h *Handlers) DeleteTranscript(c *gin.Context) {
	id := c.Param("id")

	deleted, err := db.DeleteTranscript(id)
	if err != nil {
		log.Error().Err(err).Str("transcript", id).Msg("failed to delete transcript")
		RespondInternalError(c, "Failed to delete transcript")
		return
	}
	if !deleted {
		RespondNotFound(c, "Transcript not found")
		return
	}

	// Search index cleanup is best effort
	if err := vendors.GetMeiliClient().DeleteTranscript(id); err != nil {
		log.Warn().Err(err).Str("transcript", id).Msg("failed to remove transcript from search index")
	}

	RespondData(c, gin.H{"deleted": id})
}

// GetTranscript handles GET /api/transcripts/:id
func (h *Handlers) GetTranscript(c *gin.Context) {
	t, err := db.GetTranscriptByID(c.Param("id"))
	if err != nil {
		log.Error().Err(err).Str("transcript", c.Param("id")).Msg("failed to load transcript")
		RespondInternalError(c, "Failed to load transcript")
		return
	}
	if t == nil {
		RespondNotFound(c, "Transcript not found")
		return
	}

	RespondData(c, t)
}
