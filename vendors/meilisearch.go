package vendors

import (
	"sync"

	"github.com/cohen2you/transcripts-project/config"
	"github.com/cohen2you/transcripts-project/log"
	"github.com/meilisearch/meilisearch-go"
)

var (
	meiliClient     *MeiliClient
	meiliClientOnce sync.Once
	meiliLogger     = log.GetLogger("Meilisearch")
)

// MeiliClient wraps the Meilisearch client used for the transcript archive
type MeiliClient struct {
	client   meilisearch.ServiceManager
	index    meilisearch.IndexManager
	indexUID string
}

// MeiliSearchOptions holds search options
type MeiliSearchOptions struct {
	Limit  int
	Offset int
}

// MeiliSearchResult represents a search result
type MeiliSearchResult struct {
	Hits               []MeiliHit
	EstimatedTotalHits int
	Limit              int
	Offset             int
	Query              string
}

// MeiliHit represents a single search hit
type MeiliHit struct {
	TranscriptID string
	Title        string
	Cleaned      string
	CreatedAt    string
	Formatted    map[string]string
}

// GetMeiliClient returns the singleton Meilisearch client, or nil when
// MEILI_HOST is not configured (archive search is optional).
func GetMeiliClient() *MeiliClient {
	meiliClientOnce.Do(func() {
		cfg := config.Get()
		if cfg.MeiliHost == "" {
			meiliLogger.Warn().Msg("MEILI_HOST not configured, archive search disabled")
			return
		}

		client := meilisearch.New(cfg.MeiliHost, meilisearch.WithAPIKey(cfg.MeiliAPIKey))

		// Verify connection
		if _, err := client.Health(); err != nil {
			meiliLogger.Error().Err(err).Msg("failed to connect to Meilisearch")
			return
		}

		index := client.Index(cfg.MeiliIndex)

		meiliClient = &MeiliClient{
			client:   client,
			index:    index,
			indexUID: cfg.MeiliIndex,
		}

		meiliLogger.Info().Str("host", cfg.MeiliHost).Str("index", cfg.MeiliIndex).Msg("Meilisearch initialized")
	})

	return meiliClient
}

// IsConfigured reports whether archive search is available
func (m *MeiliClient) IsConfigured() bool {
	return m != nil
}

// Search performs a keyword search over the transcript archive
func (m *MeiliClient) Search(query string, opts MeiliSearchOptions) (*MeiliSearchResult, error) {
	if m == nil {
		return nil, nil
	}

	searchReq := &meilisearch.SearchRequest{
		Limit:                 int64(opts.Limit),
		Offset:                int64(opts.Offset),
		AttributesToHighlight: []string{"title", "cleaned"},
		AttributesToCrop:      []string{"cleaned"},
		CropLength:            200,
		MatchingStrategy:      "all",
	}

	resp, err := m.index.Search(query, searchReq)
	if err != nil {
		return nil, err
	}

	result := &MeiliSearchResult{
		EstimatedTotalHits: int(resp.EstimatedTotalHits),
		Limit:              opts.Limit,
		Offset:             opts.Offset,
		Query:              query,
	}

	for _, hit := range resp.Hits {
		h, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}

		meiliHit := MeiliHit{
			TranscriptID: getString(h, "transcriptId"),
			Title:        getString(h, "title"),
			Cleaned:      getString(h, "cleaned"),
			CreatedAt:    getString(h, "createdAt"),
		}

		// Get formatted (highlighted) fields
		if formatted, ok := h["_formatted"].(map[string]interface{}); ok {
			meiliHit.Formatted = make(map[string]string)
			for k, v := range formatted {
				if s, ok := v.(string); ok {
					meiliHit.Formatted[k] = s
				}
			}
		}

		result.Hits = append(result.Hits, meiliHit)
	}

	return result, nil
}

// IndexTranscript indexes an archived transcript for keyword search
func (m *MeiliClient) IndexTranscript(id, title, cleaned, createdAt string) error {
	if m == nil {
		return nil
	}

	doc := map[string]interface{}{
		"transcriptId": id,
		"title":        title,
		"cleaned":      cleaned,
		"createdAt":    createdAt,
	}

	_, err := m.index.AddDocuments([]map[string]interface{}{doc}, "transcriptId")
	return err
}

// DeleteTranscript removes a transcript from the search index
func (m *MeiliClient) DeleteTranscript(id string) error {
	if m == nil {
		return nil
	}

	_, err := m.index.DeleteDocument(id)
	return err
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
