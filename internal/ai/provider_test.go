package ai

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeneratorAnthropic(t *testing.T) {
	gen, closeFn, err := NewGenerator(context.Background(), ProviderConfig{
		Provider: "anthropic",
		BaseURL:  "https://api.anthropic.com",
		Model:    "claude-sonnet-4-5-20250929",
	})
	require.NoError(t, err)
	require.NotNil(t, closeFn)
	defer closeFn()
	assert.IsType(t, &AnthropicProvider{}, gen)
	assert.Equal(t, "claude-sonnet-4-5-20250929", gen.Model())
}

func TestNewGeneratorGeminiWithoutKeyFailsAtCallTime(t *testing.T) {
	gen, closeFn, err := NewGenerator(context.Background(), ProviderConfig{
		Provider: "gemini",
		Model:    "gemini-2.0-flash",
	})
	require.NoError(t, err)
	require.NotNil(t, gen)
	require.NotNil(t, closeFn)
	defer closeFn()
	assert.Equal(t, "gemini-2.0-flash", gen.Model())

	_, err = gen.Generate(context.Background(), GenerationRequest{Prompt: "plan it"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini: create client")
}

func TestNewGeneratorUnknown(t *testing.T) {
	_, _, err := NewGenerator(context.Background(), ProviderConfig{Provider: "openai"})
	assert.Error(t, err)
}

func TestFirstTextSkipsBlankParts(t *testing.T) {
	_, ok := firstText(nil)
	assert.False(t, ok)

	text, ok := firstText([]genai.Part{genai.Text("  "), genai.Text("Day 1"), genai.Text("Day 2")})
	assert.True(t, ok)
	assert.Equal(t, "Day 1", text)
}
