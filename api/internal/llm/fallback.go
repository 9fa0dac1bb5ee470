package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// Invoker tries candidates from an ordered model list until one returns a
// usable response. Every attempt is bounded by Timeout; timeouts and rate
// limits pause Backoff before the next candidate.
type Invoker struct {
	Engine  Engine
	Models  []string
	Timeout time.Duration
	Backoff time.Duration
}

func NewInvoker(e Engine) *Invoker {
	return &Invoker{
		Engine:  e,
		Models:  FallbackModels,
		Timeout: GenerationTimeout,
		Backoff: FailureBackoff,
	}
}

// Generate runs prompt through the candidate list and returns the
// response text together with the model that produced it. When pinned is
// non-empty only that model is tried. Fails with *ExhaustedError once
// every candidate has failed.
func (inv *Invoker) Generate(ctx context.Context, prompt string, cfg GenConfig, pinned string) (string, string, error) {
	candidates := inv.Models
	if pinned != "" {
		candidates = []string{pinned}
	}

	var lastErr error
	for i, model := range candidates {
		if err := ctx.Err(); err != nil {
			return "", "", err
		}
		log.Printf("attempt %d: using %s model %s", i+1, inv.Engine.Name(), model)

		text, err := inv.tryModel(ctx, model, prompt, cfg)
		if err == nil {
			log.Printf("model %s responded successfully", model)
			return text, model, nil
		}
		lastErr = err

		var te *TimeoutError
		if errors.As(err, &te) {
			log.Printf("timeout on %s, trying next model", model)
			inv.pause(ctx)
			continue
		}

		kind := Classify(err)
		log.Printf("error with %s (%s): %s", model, kind, truncate(err.Error(), 150))
		if kind == KindRateLimited {
			// Give the quota window a moment before the next candidate.
			inv.pause(ctx)
		}
	}

	return "", "", &ExhaustedError{Last: lastErr}
}

// tryModel runs one bounded generation attempt and validates the text.
func (inv *Invoker) tryModel(ctx context.Context, model, prompt string, cfg GenConfig) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, inv.Timeout)
	defer cancel()

	text, err := inv.Engine.GenerateText(attemptCtx, model, prompt, cfg)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || attemptCtx.Err() == context.DeadlineExceeded {
			return "", &TimeoutError{Model: model, Timeout: inv.Timeout}
		}
		return "", err
	}

	if len(strings.TrimSpace(text)) < 10 {
		return "", &ModelError{
			Model: model,
			Kind:  KindInvalidResponse,
			Err:   fmt.Errorf("model returned empty or invalid response"),
		}
	}
	return text, nil
}

func (inv *Invoker) pause(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(inv.Backoff):
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
