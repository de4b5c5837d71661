// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize produces one-line natural-language paper summaries via
// an OpenAI-compatible chat API. The stage is optional: without credentials
// it is simply not constructed, and a failed call leaves the record's
// summary absent.
package summarize

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"text/template"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Backend abstracts the summary API so tests can supply a mock.
type Backend interface {
	Summarize(ctx context.Context, title, abstract string) (string, error)
}

// summaryPromptTmpl instructs the model to return a single line that can be
// embedded in a markdown table cell.
var summaryPromptTmpl = template.Must(template.New("summary").Parse(`Summarize the following paper abstract in two or three sentences: what the paper does and what it concludes. Respond with plain text on a single line, with no line breaks, no markdown, and no preamble.

Title: {{.Title}}

Abstract: {{.Abstract}}
`))

// OpenAIBackend calls a chat completions endpoint. A custom base URL points
// it at any OpenAI-compatible provider (the default config targets
// DashScope's compatible mode with qwen-long).
type OpenAIBackend struct {
	client openai.Client
	model  string
}

// NewOpenAIBackend builds a backend for the given credentials and model.
func NewOpenAIBackend(cfg types.SummaryConfig) *OpenAIBackend {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIBackend{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}

// Summarize requests a one-line summary for a single paper.
func (b *OpenAIBackend) Summarize(ctx context.Context, title, abstract string) (string, error) {
	prompt, err := renderPrompt(title, abstract)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(b.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("summary API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("summary API returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("summary API returned empty content")
	}
	return text, nil
}

// Annotate fills Summary on records that have an abstract and no summary
// yet. Failures are logged per record and never block the run. The input
// slice is not modified.
func Annotate(ctx context.Context, backend Backend, papers []types.PaperRecord, w io.Writer) []types.PaperRecord {
	out := make([]types.PaperRecord, len(papers))
	copy(out, papers)

	for i := range out {
		if out[i].Summary != "" || out[i].Abstract == "" {
			continue
		}
		text, err := backend.Summarize(ctx, out[i].Title, out[i].Abstract)
		if err != nil {
			fmt.Fprintf(w, "warning: summary failed for %s: %v\n", out[i].ID, err)
			continue
		}
		out[i].Summary = sanitize(text)
	}
	return out
}

// sanitize folds any line breaks the model produced anyway, so a summary
// can never break a table row.
func sanitize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func renderPrompt(title, abstract string) (string, error) {
	var buf bytes.Buffer
	err := summaryPromptTmpl.Execute(&buf, struct{ Title, Abstract string }{title, abstract})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
