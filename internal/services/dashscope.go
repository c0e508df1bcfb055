package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/MrLemur/gitreport/internal/models"
	"github.com/MrLemur/gitreport/pkg/helpers"
)

// DefaultDashScopeEndpoint is the DashScope text generation API
const DefaultDashScopeEndpoint = "https://dashscope.aliyuncs.com/api/v1/services/aigc/text-generation/generation"

// DashScopeSummarizer calls the hosted DashScope generation API
type DashScopeSummarizer struct {
	Endpoint string
	APIKey   string
	Model    string
	Client   *http.Client
}

// NewDashScopeSummarizer creates a summarizer; an empty endpoint uses the default
func NewDashScopeSummarizer(endpoint, apiKey, model string) *DashScopeSummarizer {
	return &DashScopeSummarizer{
		Endpoint: helpers.FirstNonEmpty(endpoint, DefaultDashScopeEndpoint),
		APIKey:   apiKey,
		Model:    model,
		Client:   http.DefaultClient,
	}
}

type dashScopeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type dashScopeRequest struct {
	Model string `json:"model"`
	Input struct {
		Messages []dashScopeMessage `json:"messages"`
	} `json:"input"`
	Parameters struct {
		ResultFormat string `json:"result_format"`
	} `json:"parameters"`
}

// Pointer fields distinguish absent keys from empty values
type dashScopeResponse struct {
	Output *struct {
		Choices []struct {
			Message *struct {
				Role    string  `json:"role"`
				Content *string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	} `json:"output"`
	Usage     *models.Usage `json:"usage"`
	Code      string        `json:"code"`
	Message   string        `json:"message"`
	RequestID string        `json:"request_id"`
}

// Summarize sends prompt as a single user message
func (d *DashScopeSummarizer) Summarize(ctx context.Context, prompt string) (Completion, error) {
	var req dashScopeRequest
	req.Model = d.Model
	req.Input.Messages = []dashScopeMessage{{Role: "user", Content: prompt}}
	req.Parameters.ResultFormat = "message"

	payload, err := json.Marshal(req)
	if err != nil {
		return Completion{}, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return Completion{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+d.APIKey)

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return Completion{}, fmt.Errorf("calling DashScope: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Completion{}, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr dashScopeResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Code != "" {
			return Completion{}, fmt.Errorf("DashScope returned %d: %s: %s", resp.StatusCode, apiErr.Code, apiErr.Message)
		}
		return Completion{}, fmt.Errorf("DashScope returned %d: %s", resp.StatusCode, helpers.TruncateString(string(body), 200))
	}

	return ParseGeneration(body)
}

// ParseGeneration extracts output.choices[0].message.content from a
// DashScope response body. Absent fields produce Missing; only a body that
// is not JSON is an error.
func ParseGeneration(body []byte) (Completion, error) {
	var resp dashScopeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Completion{}, fmt.Errorf("decoding response: %w", err)
	}

	completion := Completion{Usage: resp.Usage}
	switch {
	case resp.Output == nil:
		completion.Result = Missing{Reason: "response has no output"}
	case len(resp.Output.Choices) == 0:
		completion.Result = Missing{Reason: "response has no choices"}
	case resp.Output.Choices[0].Message == nil:
		completion.Result = Missing{Reason: "first choice has no message"}
	case resp.Output.Choices[0].Message.Content == nil:
		completion.Result = Missing{Reason: "message has no content"}
	default:
		completion.Result = Success{Content: *resp.Output.Choices[0].Message.Content}
	}
	return completion, nil
}
