package api

import (
	"strings"

	"github.com/cohen2you/transcripts-project/log"
	"github.com/cohen2you/transcripts-project/transcript"
	"github.com/cohen2you/transcripts-project/vendors"
	"github.com/gin-gonic/gin"
)

// maxTranscriptBytes bounds pasted input; a full earnings call runs well
// under 1 MB of text.
const maxTranscriptBytes = 1 << 20

// passRequest is the body for single-pass and job submissions
type passRequest struct {
	Text   string   `json:"text"`
	Passes []string `json:"passes,omitempty"`
}

func (r *passRequest) validate(c *gin.Context) bool {
	if strings.TrimSpace(r.Text) == "" {
		RespondBadRequest(c, "Transcript text is required")
		return false
	}
	if len(r.Text) > maxTranscriptBytes {
		RespondBadRequest(c, "Transcript text exceeds the 1 MB limit")
		return false
	}
	return true
}

// GetPasses handles GET /api/passes
func (h *Handlers) GetPasses(c *gin.Context) {
	RespondList(c, transcript.AllPasses())
}

// RunPass handles POST /api/passes/:name — one cleanup pass, synchronous
func (h *Handlers) RunPass(c *gin.Context) {
	name := c.Param("name")
	if _, ok := transcript.GetPass(name); !ok {
		RespondNotFound(c, "Unknown pass: "+name)
		return
	}

	var req passRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body")
		return
	}
	if !req.validate(c) {
		return
	}

	result, err := transcript.RunPass(c.Request.Context(), vendors.GetOpenAIClient(), name, req.Text)
	if err != nil {
		// Provider errors are surfaced verbatim; there is nothing to
		// recover here beyond showing the message to the user.
		log.Error().Err(err).Str("pass", name).Msg("pass failed")
		RespondServiceUnavailable(c, err.Error())
		return
	}

	RespondData(c, result)
}
