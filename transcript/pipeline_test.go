package transcript

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cohen2you/transcripts-project/vendors"
)

// fakeCompleter scripts one response per call and records the prompts it saw
type fakeCompleter struct {
	responses []vendors.CompletionResponse
	err       error
	calls     []vendors.CompletionOptions
}

func (f *fakeCompleter) Complete(ctx context.Context, opts vendors.CompletionOptions) (*vendors.CompletionResponse, error) {
	f.calls = append(f.calls, opts)
	if f.err != nil {
		return nil, f.err
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return &resp, nil
}

func respWithUsage(content string, tokens int) vendors.CompletionResponse {
	r := vendors.CompletionResponse{Content: content, FinishReason: "stop"}
	r.Usage.PromptTokens = tokens
	r.Usage.CompletionTokens = tokens
	r.Usage.TotalTokens = 2 * tokens
	return r
}

func TestRunPassUnknown(t *testing.T) {
	_, err := RunPass(context.Background(), &fakeCompleter{}, "summarize", "text")
	if err == nil {
		t.Fatal("expected error for unknown pass")
	}
}

func TestRunPassProviderErrorVerbatim(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("rate limit exceeded")}
	_, err := RunPass(context.Background(), fake, PassParagraphs, "text")
	if err == nil || err.Error() != "rate limit exceeded" {
		t.Fatalf("err = %v, want provider error verbatim", err)
	}
}

func TestRunPassPostprocessing(t *testing.T) {
	fake := &fakeCompleter{responses: []vendors.CompletionResponse{
		respWithUsage("```\nJane Doe: **Revenue** grew.\n---CHANGES---\n- Relabeled opening remarks\n```", 10),
	}}

	result, err := RunPass(context.Background(), fake, PassAttribution, "Jane Doe: Revenue grew.")
	if err != nil {
		t.Fatal(err)
	}

	if result.Text != "Jane Doe: **Revenue** grew." {
		t.Errorf("Text = %q", result.Text)
	}
	if result.HTML != "Jane Doe: <strong>Revenue</strong> grew." {
		t.Errorf("HTML = %q", result.HTML)
	}
	if len(result.Changes) != 1 || result.Changes[0] != "Relabeled opening remarks" {
		t.Errorf("Changes = %v", result.Changes)
	}
	if result.Usage.TotalTokens != 20 {
		t.Errorf("TotalTokens = %d, want 20", result.Usage.TotalTokens)
	}

	if len(fake.calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(fake.calls))
	}
	if fake.calls[0].SystemPrompt != PromptFor(PassAttribution) {
		t.Error("attribution prompt not used")
	}
}

func TestRunPassSpeakerLabelsPreprocesses(t *testing.T) {
	input := "I would now like to turn the call over to Jane Doe.\nThank you, operator."

	fake := &fakeCompleter{responses: []vendors.CompletionResponse{respWithUsage("cleaned", 1)}}
	result, err := RunPass(context.Background(), fake, PassSpeakerLabels, input)
	if err != nil {
		t.Fatal(err)
	}

	// The hand-off preprocessor runs before the provider sees the text
	if !strings.Contains(fake.calls[0].Prompt, "\nJane Doe:\n") {
		t.Errorf("prompt missing inserted label:\n%s", fake.calls[0].Prompt)
	}
	if len(result.Inserted) != 1 || result.Inserted[0] != "Jane Doe:" {
		t.Errorf("Inserted = %v", result.Inserted)
	}
}

func TestRunPipeline(t *testing.T) {
	fake := &fakeCompleter{responses: []vendors.CompletionResponse{
		respWithUsage("after paragraphs", 5),
		respWithUsage("after disclaimer", 7),
	}}

	var seen []string
	result, err := RunPipeline(context.Background(), fake,
		[]string{PassParagraphs, PassDisclaimer}, "raw text",
		func(name string) { seen = append(seen, name) })
	if err != nil {
		t.Fatal(err)
	}

	if len(seen) != 2 || seen[0] != PassParagraphs || seen[1] != PassDisclaimer {
		t.Errorf("pass callbacks = %v", seen)
	}
	if result.Text != "after disclaimer" {
		t.Errorf("Text = %q", result.Text)
	}

	// Each pass feeds the next
	if fake.calls[0].Prompt != "raw text" {
		t.Errorf("first prompt = %q", fake.calls[0].Prompt)
	}
	if fake.calls[1].Prompt != "after paragraphs" {
		t.Errorf("second prompt = %q", fake.calls[1].Prompt)
	}

	// Usage accumulates across passes
	if result.Usage.TotalTokens != 24 {
		t.Errorf("TotalTokens = %d, want 24", result.Usage.TotalTokens)
	}
}

func TestRunPipelineDefaultsAndValidation(t *testing.T) {
	fake := &fakeCompleter{responses: []vendors.CompletionResponse{respWithUsage("out", 1)}}

	if _, err := RunPipeline(context.Background(), fake, []string{"bogus"}, "text", nil); err == nil {
		t.Error("expected error for unknown pass name")
	}

	_, err := RunPipeline(context.Background(), fake, nil, "text", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(fake.calls) != len(DefaultPassNames()) {
		t.Errorf("calls = %d, want %d", len(fake.calls), len(DefaultPassNames()))
	}
}

func TestRunPipelineStopsOnError(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("upstream timeout")}

	var seen []string
	_, err := RunPipeline(context.Background(), fake, nil, "text",
		func(name string) { seen = append(seen, name) })
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "upstream timeout") {
		t.Errorf("err = %v", err)
	}
	if len(seen) != 1 {
		t.Errorf("pipeline should stop after first failing pass, ran %v", seen)
	}
}
