package api

import (
	"strconv"
	"strings"

	"github.com/cohen2you/transcripts-project/log"
	"github.com/cohen2you/transcripts-project/vendors"
	"github.com/gin-gonic/gin"
)

// Search handles GET /api/search?q= — keyword search over the transcript
// archive. Requires a configured Meilisearch instance.
func (h *Handlers) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		RespondBadRequest(c, "Query parameter q is required")
		return
	}

	meili := vendors.GetMeiliClient()
	if !meili.IsConfigured() {
		RespondServiceUnavailable(c, "Archive search is not configured")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = 20
	}

	result, err := meili.Search(query, vendors.MeiliSearchOptions{Limit: limit, Offset: offset})
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("search failed")
		RespondInternalError(c, "Search failed")
		return
	}

	RespondData(c, result)
}
