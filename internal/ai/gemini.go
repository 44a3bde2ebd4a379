package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements Generator using Google's Gemini models.
type GeminiProvider struct {
	client  *genai.Client
	initErr error
	model   string
	timeout time.Duration
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables. A zero timeout
// leaves deadlines to the caller's context. Extra options are appended after
// the API key (endpoint or HTTP client overrides).
//
// An empty apiKey does not fail construction: the client error is kept and
// returned by every Generate call instead.
func NewGeminiProvider(ctx context.Context, apiKey, model string, timeout time.Duration, opts ...option.ClientOption) (*GeminiProvider, error) {
	p := &GeminiProvider{model: model, timeout: timeout}
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		err = fmt.Errorf("gemini: create client: %w", err)
		if apiKey != "" {
			return nil, err
		}
		p.initErr = err
		return p, nil
	}
	p.client = client
	return p, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	if p.client != nil {
		p.client.Close()
	}
}

func (p *GeminiProvider) Model() string {
	return p.model
}

// Generate sends one request and returns the first text part of the first candidate.
func (p *GeminiProvider) Generate(ctx context.Context, req GenerationRequest) (*Completion, error) {
	if p.initErr != nil {
		return nil, p.initErr
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	// GenerativeModel carries mutable settings, so each call gets its own.
	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(float32(req.Temperature))
	model.SetMaxOutputTokens(int32(req.MaxTokens))
	if req.System != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(req.System))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini: API returned empty candidates")
	}

	text, ok := firstText(resp.Candidates[0].Content.Parts)
	if !ok {
		return nil, fmt.Errorf("gemini: API returned empty text parts")
	}

	var usage Usage
	if resp.UsageMetadata != nil {
		usage.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	return &Completion{Text: text, Usage: usage}, nil
}

func firstText(parts []genai.Part) (string, bool) {
	for _, part := range parts {
		txt, ok := part.(genai.Text)
		if !ok || strings.TrimSpace(string(txt)) == "" {
			continue
		}
		return string(txt), true
	}
	return "", false
}
