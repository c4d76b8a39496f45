package transcript

import (
	"context"
	"fmt"

	"github.com/cohen2you/transcripts-project/vendors"
)

// Completer is the slice of the provider client the pipeline needs:
// prompt text in, completion text and a token count out.
type Completer interface {
	Complete(ctx context.Context, opts vendors.CompletionOptions) (*vendors.CompletionResponse, error)
}

// Usage accumulates token counts across passes
type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// Add folds a completion response's usage into the total
func (u *Usage) Add(resp *vendors.CompletionResponse) {
	u.PromptTokens += resp.Usage.PromptTokens
	u.CompletionTokens += resp.Usage.CompletionTokens
	u.TotalTokens += resp.Usage.TotalTokens
}

// PassResult is the outcome of one or more cleanup passes
type PassResult struct {
	Text     string   `json:"text"`
	HTML     string   `json:"html"`
	Changes  []string `json:"changes,omitempty"`
	Inserted []string `json:"insertedLabels,omitempty"`
	Usage    Usage    `json:"usage"`
}

// RunPass executes a single cleanup pass: hand-off preprocessing (for the
// speaker-labels pass), one provider call, then string post-processing.
// Provider errors are returned verbatim.
func RunPass(ctx context.Context, c Completer, name, text string) (*PassResult, error) {
	pass, ok := GetPass(name)
	if !ok {
		return nil, fmt.Errorf("unknown pass %q", name)
	}

	var inserted []string
	if name == PassSpeakerLabels {
		text, inserted = InsertMissingHandoffLabels(text)
	}

	resp, err := c.Complete(ctx, vendors.CompletionOptions{
		SystemPrompt: PromptFor(name),
		Prompt:       text,
		Temperature:  pass.Temperature,
	})
	if err != nil {
		return nil, err
	}

	content := StripCodeFences(resp.Content)
	cleaned, changes := SplitChanges(content)

	result := &PassResult{
		Text:     cleaned,
		HTML:     BoldToHTML(cleaned),
		Changes:  changes,
		Inserted: inserted,
	}
	result.Usage.Add(resp)
	return result, nil
}

// RunPipeline executes the named passes sequentially, feeding each pass's
// output text into the next. onPass, when non-nil, is invoked with the pass
// name before it runs (job progress reporting). The first pass error aborts
// the pipeline.
func RunPipeline(ctx context.Context, c Completer, names []string, text string, onPass func(name string)) (*PassResult, error) {
	if len(names) == 0 {
		names = DefaultPassNames()
	}
	if err := ValidatePassNames(names); err != nil {
		return nil, err
	}

	total := &PassResult{Text: text}
	for _, name := range names {
		if onPass != nil {
			onPass(name)
		}

		res, err := RunPass(ctx, c, name, total.Text)
		if err != nil {
			return nil, fmt.Errorf("pass %s: %w", name, err)
		}

		total.Text = res.Text
		total.HTML = res.HTML
		total.Changes = append(total.Changes, res.Changes...)
		total.Inserted = append(total.Inserted, res.Inserted...)
		total.Usage.PromptTokens += res.Usage.PromptTokens
		total.Usage.CompletionTokens += res.Usage.CompletionTokens
		total.Usage.TotalTokens += res.Usage.TotalTokens
	}

	return total, nil
}
