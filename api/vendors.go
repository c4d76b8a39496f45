package api

import (
	"github.com/cohen2you/transcripts-project/log"
	"github.com/cohen2you/transcripts-project/vendors"
	"github.com/gin-gonic/gin"
)

// GetOpenAIModels handles GET /api/vendors/openai/models
func (h *Handlers) GetOpenAIModels(c *gin.Context) {
	models, err := vendors.GetOpenAIClient().ListModels(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list models")
		RespondServiceUnavailable(c, err.Error())
		return
	}

	RespondList(c, models)
}
