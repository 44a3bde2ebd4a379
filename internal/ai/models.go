package ai

// GenerationRequest is everything a provider needs for one completion.
type GenerationRequest struct {
	// System is the persona/instruction text sent out of band from the conversation.
	System string

	// Prompt is the sole user turn.
	Prompt string

	MaxTokens   int
	Temperature float64
}

// Usage holds the token accounting reported by the provider.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Completion is the provider's answer: the first text segment plus usage.
type Completion struct {
	Text  string
	Usage Usage
}
