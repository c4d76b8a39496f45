package vendors

import (
	"context"
	"sync"

	"github.com/cohen2you/transcripts-project/config"
	"github.com/cohen2you/transcripts-project/log"
	"github.com/cohen2you/transcripts-project/utils"
	"github.com/sashabaranov/go-openai"
)

var (
	openaiClient     *OpenAIClient
	openaiClientOnce sync.Once
	openaiLogger     = log.GetLogger("OpenAI")
)

// OpenAIClient wraps the OpenAI client
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// CompletionOptions holds options for completions
type CompletionOptions struct {
	SystemPrompt string
	Prompt       string
	MaxTokens    int
	Temperature  float32
	JSONMode     bool
}

// CompletionResponse represents a completion response
type CompletionResponse struct {
	Content      string
	FinishReason string
	Usage        struct {
		PromptTokens     int
		CompletionTokens int
		TotalTokens      int
	}
}

// GetOpenAIClient returns the singleton OpenAI client, or nil when
// OPENAI_API_KEY is not configured.
func GetOpenAIClient() *OpenAIClient {
	openaiClientOnce.Do(func() {
		cfg := config.Get()

		if cfg.OpenAIAPIKey == "" {
			openaiLogger.Warn().Msg("OPENAI_API_KEY not configured, OpenAI disabled")
			return
		}

		clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
		if cfg.OpenAIBaseURL != "" && cfg.OpenAIBaseURL != "https://api.openai.com/v1" {
			clientConfig.BaseURL = cfg.OpenAIBaseURL
		}

		openaiClient = &OpenAIClient{
			client: openai.NewClientWithConfig(clientConfig),
			model:  cfg.OpenAIModel,
		}

		openaiLogger.Info().Str("model", cfg.OpenAIModel).Str("baseURL", cfg.OpenAIBaseURL).Msg("OpenAI initialized")
	})

	return openaiClient
}

// IsConfigured reports whether the client is usable
func (o *OpenAIClient) IsConfigured() bool {
	return o != nil
}

// Complete performs a chat completion
func (o *OpenAIClient) Complete(ctx context.Context, opts CompletionOptions) (*CompletionResponse, error) {
	if o == nil {
		return nil, ErrNotConfigured
	}

	var messages []openai.ChatCompletionMessage

	if opts.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: opts.SystemPrompt,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: opts.Prompt,
	})

	req := openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}

	if opts.JSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	openaiLogger.Debug().
		Str("model", o.model).
		Int("promptChars", len(opts.Prompt)).
		Float32("temperature", opts.Temperature).
		Bool("jsonMode", opts.JSONMode).
		Msg("openai request")

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		openaiLogger.Error().Err(err).Msg("completion failed")
		return nil, err
	}

	if len(resp.Choices) == 0 {
		openaiLogger.Error().Msg("openai response has no choices")
		return &CompletionResponse{}, nil
	}

	content := resp.Choices[0].Message.Content
	finishReason := string(resp.Choices[0].FinishReason)

	openaiLogger.Debug().
		Str("finishReason", finishReason).
		Int("promptTokens", resp.Usage.PromptTokens).
		Int("completionTokens", resp.Usage.CompletionTokens).
		Int("totalTokens", resp.Usage.TotalTokens).
		Msg("openai response")

	out := &CompletionResponse{
		Content:      content,
		FinishReason: finishReason,
	}
	out.Usage.PromptTokens = resp.Usage.PromptTokens
	out.Usage.CompletionTokens = resp.Usage.CompletionTokens
	out.Usage.TotalTokens = resp.Usage.TotalTokens
	return out, nil
}

// SuggestTitle asks the model for a short archive title for a cleaned
// transcript. Failures fall back to an empty title; archiving must not
// depend on this call.
func (o *OpenAIClient) SuggestTitle(ctx context.Context, text string) string {
	if o == nil {
		return ""
	}

	// The opening of the call names the company and quarter; that is all
	// the model needs.
	excerpt := text
	if len(excerpt) > 2000 {
		excerpt = excerpt[:2000]
	}

	resp, err := o.Complete(ctx, CompletionOptions{
		SystemPrompt: titlePrompt,
		Prompt:       excerpt,
		Temperature:  0.1,
		JSONMode:     true,
	})
	if err != nil {
		openaiLogger.Warn().Err(err).Msg("title suggestion failed")
		return ""
	}

	parsed, err := utils.ParseJSONFromLLMResponse(resp.Content)
	if err != nil {
		openaiLogger.Warn().Err(err).Str("content", resp.Content).Msg("failed to parse title JSON")
		return ""
	}

	return utils.ExtractStringField(parsed, "title")
}

// ModelInfo represents model metadata from OpenAI API
type ModelInfo struct {
	ID      string `json:"id"`
	OwnedBy string `json:"owned_by,omitempty"`
}

// ListModels returns available models from the provider
func (o *OpenAIClient) ListModels(ctx context.Context) ([]ModelInfo, error) {
	if o == nil {
		return []ModelInfo{}, nil
	}

	resp, err := o.client.ListModels(ctx)
	if err != nil {
		return nil, err
	}

	models := make([]ModelInfo, 0, len(resp.Models))
	for _, model := range resp.Models {
		models = append(models, ModelInfo{
			ID:      model.ID,
			OwnedBy: model.OwnedBy,
		})
	}

	return models, nil
}
