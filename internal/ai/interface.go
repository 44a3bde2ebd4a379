package ai

import (
	"context"
)

// Generator is the upstream text-generation capability.
// Implementations issue exactly one call per Generate and never retry.
type Generator interface {
	// Generate sends the system instruction and the single user turn in req
	// and blocks until the full completion is available.
	Generate(ctx context.Context, req GenerationRequest) (*Completion, error)

	// Model reports the model identifier sent upstream.
	Model() string
}
