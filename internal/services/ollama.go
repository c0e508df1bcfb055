package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MrLemur/gitreport/internal/models"
	ollama "github.com/ollama/ollama/api"
)

// OllamaSummarizer generates reports with a local Ollama server
type OllamaSummarizer struct {
	client      *ollama.Client
	Model       string
	Temperature float64
}

// NewOllamaSummarizer connects to host, or to OLLAMA_HOST when host is empty
func NewOllamaSummarizer(host, model string, temperature float64) (*OllamaSummarizer, error) {
	if model == "" {
		return nil, fmt.Errorf("Ollama model must be specified")
	}

	var client *ollama.Client
	if host != "" {
		base, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("invalid Ollama host %q: %w", host, err)
		}
		client = ollama.NewClient(base, http.DefaultClient)
	} else {
		var err error
		client, err = ollama.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("failed to create Ollama client: %w", err)
		}
	}

	return &OllamaSummarizer{client: client, Model: model, Temperature: temperature}, nil
}

// Summarize sends prompt as a single user message and collects the streamed reply
func (o *OllamaSummarizer) Summarize(ctx context.Context, prompt string) (Completion, error) {
	var (
		response string
		usage    *models.Usage
	)
	respFunc := func(resp ollama.ChatResponse) error {
		response += resp.Message.Content
		if resp.Done {
			usage = &models.Usage{
				InputTokens:  resp.PromptEvalCount,
				OutputTokens: resp.EvalCount,
				TotalTokens:  resp.PromptEvalCount + resp.EvalCount,
			}
		}
		return nil
	}

	err := o.client.Chat(
		ctx,
		&ollama.ChatRequest{
			Model:    o.Model,
			Messages: []ollama.Message{{Role: "user", Content: prompt}},
			Options:  map[string]any{"temperature": o.Temperature},
		},
		respFunc,
	)
	if err != nil {
		return Completion{}, fmt.Errorf("calling Ollama: %w", err)
	}

	if response == "" {
		return Completion{Result: Missing{Reason: "model returned no content"}, Usage: usage}, nil
	}
	return Completion{Result: Success{Content: response}, Usage: usage}, nil
}

// CheckOllamaAvailability checks if the Ollama server is available
func (o *OllamaSummarizer) CheckOllamaAvailability(ctx context.Context) error {
	if _, err := o.client.List(ctx); err != nil {
		return fmt.Errorf("failed to connect to Ollama server: %w", err)
	}
	return nil
}
