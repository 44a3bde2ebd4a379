package ai

import (
	"context"
	"fmt"
	"time"
)

// ProviderConfig selects and configures a Generator.
type ProviderConfig struct {
	Provider string // "anthropic" or "gemini"
	APIKey   string
	BaseURL  string // anthropic only
	Model    string
	Timeout  time.Duration
}

// NewGenerator builds the configured provider. The returned close func is never nil.
func NewGenerator(ctx context.Context, cfg ProviderConfig) (Generator, func(), error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout), func() {}, nil
	case "gemini":
		p, err := NewGeminiProvider(ctx, cfg.APIKey, cfg.Model, cfg.Timeout)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	default:
		return nil, nil, fmt.Errorf("ai: unknown provider %q", cfg.Provider)
	}
}
