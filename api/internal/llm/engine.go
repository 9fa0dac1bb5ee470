package llm

import (
	"context"
	"time"
)

// FallbackModels is the ordered candidate list tried until one succeeds.
// Verified to work with the free tier.
var FallbackModels = []string{
	"gemini-2.5-flash",
	"gemini-2.5-flash-lite",
	"gemini-3-flash",
}

const (
	// GenerationTimeout bounds a single generation attempt.
	GenerationTimeout = 45 * time.Second

	// FailureBackoff is the pause before moving to the next candidate
	// after a timeout or rate limit.
	FailureBackoff = 1 * time.Second
)

// GenConfig carries the per-call generation parameters.
type GenConfig struct {
	Temperature     float32
	MaxOutputTokens int32
	CandidateCount  int32
}

// Engine is a text-generation backend. Implementations must honor ctx
// cancellation on the network call.
type Engine interface {
	Name() string
	GenerateText(ctx context.Context, model, prompt string, cfg GenConfig) (string, error)
	ListModels(ctx context.Context) ([]string, error)
}
