package services

import (
	"context"
	"fmt"
	"time"

	"github.com/MrLemur/gitreport/internal/config"
	"github.com/MrLemur/gitreport/internal/models"
	"github.com/MrLemur/gitreport/internal/ui"
)

// Placeholder reports used when no generated text is available
const (
	NoCommitsReport = "No commits found in the specified date range"
	NoContentReport = "No content generated"
	FallbackReport  = "Error generating report"
)

// Summarizer sends a prompt to a language model
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (Completion, error)
}

// Extraction is the outcome of reading generated text out of a response:
// either Success or Missing
type Extraction interface {
	extraction()
}

// Success holds the generated text
type Success struct {
	Content string
}

// Missing explains which part of the response was absent
type Missing struct {
	Reason string
}

func (Success) extraction() {}
func (Missing) extraction() {}

// Completion is a parsed model response
type Completion struct {
	Result Extraction
	// Usage is nil when the service did not report token counts
	Usage *models.Usage
}

// NewSummarizer builds the summarizer selected by the configuration
func NewSummarizer(cfg config.LLMConfig) (Summarizer, error) {
	switch cfg.Provider {
	case config.ProviderOllama:
		return NewOllamaSummarizer(cfg.OllamaHost, cfg.Model, cfg.Temperature)
	case config.ProviderDashScope:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("no DashScope API key: set llm.api_key, DASHSCOPE_API_KEY or --api-key")
		}
		return NewDashScopeSummarizer(cfg.Endpoint, cfg.APIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// ReportClient turns prompts into report text and never fails
type ReportClient struct {
	Summarizer Summarizer
	Timeout    time.Duration
}

// call sends prompt and logs usage and missing content
func (c ReportClient) call(ctx context.Context, prompt, activity string) (Extraction, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	stop := ui.StartSpinner(activity)
	completion, err := c.Summarizer.Summarize(ctx, prompt)
	stop()
	if err != nil {
		return nil, err
	}

	if u := completion.Usage; u != nil {
		ui.LogInfo("Token usage: input %d, output %d, total %d", u.InputTokens, u.OutputTokens, u.TotalTokens)
	}
	if r, ok := completion.Result.(Missing); ok {
		ui.LogWarning("Summarization response had no content: %s", r.Reason)
	}
	return completion.Result, nil
}

// Generate returns the report for prompt, substituting a placeholder when
// no text could be obtained
func (c ReportClient) Generate(ctx context.Context, prompt string) string {
	result, err := c.call(ctx, prompt, "Generating report...")
	if err != nil {
		ui.LogError("Error generating report: %v", err)
		return FallbackReport
	}
	if r, ok := result.(Success); ok {
		return r.Content
	}
	return NoContentReport
}

// Polish asks the model to tidy up report and returns report unchanged when
// that fails
func (c ReportClient) Polish(ctx context.Context, report, language string) string {
	result, err := c.call(ctx, BuildPolishPrompt(report, language), "Polishing report...")
	if err != nil {
		ui.LogError("Error polishing report, keeping original text: %v", err)
		return report
	}
	if r, ok := result.(Success); ok {
		return r.Content
	}
	ui.LogWarning("Polishing produced no content, keeping original text")
	return report
}
