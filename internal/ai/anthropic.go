package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	anthropicVersion     = "2023-06-01"
	anthropicMessagesURL = "/v1/messages"
)

// AnthropicProvider implements Generator against the Anthropic Messages API.
type AnthropicProvider struct {
	client *resty.Client
	model  string
}

// NewAnthropicProvider builds a provider for baseURL (e.g. https://api.anthropic.com).
// A zero timeout leaves the HTTP client default in place. Retries stay disabled.
func NewAnthropicProvider(apiKey, baseURL, model string, timeout time.Duration) *AnthropicProvider {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", anthropicVersion).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(0)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &AnthropicProvider{client: client, model: model}
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type anthropicError struct {
	Type  string `json:"type"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *AnthropicProvider) Model() string {
	return p.model
}

// Generate posts a single-turn message and returns the first content block.
func (p *AnthropicProvider) Generate(ctx context.Context, req GenerationRequest) (*Completion, error) {
	var out anthropicResponse
	var apiErr anthropicError

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(anthropicRequest{
			Model:       p.model,
			MaxTokens:   req.MaxTokens,
			Temperature: req.Temperature,
			System:      req.System,
			Messages:    []anthropicMessage{{Role: "user", Content: req.Prompt}},
		}).
		SetResult(&out).
		SetError(&apiErr).
		Post(anthropicMessagesURL)
	if err != nil {
		return nil, fmt.Errorf("anthropic: do request: %w", err)
	}
	if resp.IsError() {
		if apiErr.Error.Message != "" {
			return nil, fmt.Errorf("anthropic: %s (status %d): %s", apiErr.Error.Type, resp.StatusCode(), apiErr.Error.Message)
		}
		return nil, fmt.Errorf("anthropic: unexpected status %d: %s", resp.StatusCode(), resp.String())
	}
	if len(out.Content) == 0 {
		return nil, fmt.Errorf("anthropic: API returned empty content (raw: %s)", resp.String())
	}

	return &Completion{
		Text: out.Content[0].Text,
		Usage: Usage{
			InputTokens:  out.Usage.InputTokens,
			OutputTokens: out.Usage.OutputTokens,
		},
	}, nil
}
