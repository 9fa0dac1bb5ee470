package exam

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jiyanshuj/PaperVista/api/internal/llm"
	"github.com/jiyanshuj/PaperVista/api/internal/util"
)

// Invoker is the slice of the model-fallback layer the pipeline needs.
type Invoker interface {
	Generate(ctx context.Context, prompt string, cfg llm.GenConfig, pinned string) (text, model string, err error)
}

var (
	outlineConfig = llm.GenConfig{Temperature: 0.3, MaxOutputTokens: 800, CandidateCount: 1}
	contentConfig = llm.GenConfig{Temperature: 0.5, MaxOutputTokens: 1000, CandidateCount: 1}
)

// Builder runs the two-phase pipeline: a compact outline first, then one
// fully worded question per outline entry. Phase 2 is strictly sequential
// to respect upstream rate limits and keep the pinned-model assumption.
type Builder struct {
	Invoker Invoker
	Retry   llm.RetryPolicy
	Pacing  time.Duration // pause between phase-2 questions
}

func NewBuilder(inv Invoker) *Builder {
	return &Builder{
		Invoker: inv,
		Retry:   llm.DefaultRetry,
		Pacing:  500 * time.Millisecond,
	}
}

// Build produces exactly params.NumQuestions questions for the request.
// Per-question failures are recovered with a deterministic fallback; only
// phase-1 exhaustion fails the build as a whole.
func (b *Builder) Build(ctx context.Context, req Request) (*Paper, error) {
	params := ParamsFor(req.ExamType)
	topics := SplitTopics(req.TopicHeadings)

	log.Printf("phase 1: generating outline (%d questions, %d topics)", params.NumQuestions, len(topics))

	text, model, err := b.Invoker.Generate(ctx, OutlinePrompt(req.CourseName, req.TopicHeadings, params.NumQuestions), outlineConfig, "")
	if err != nil {
		return nil, fmt.Errorf("outline generation: %w", err)
	}
	parsed, err := util.ParseLoose(text)
	if err != nil {
		return nil, fmt.Errorf("outline: %w", err)
	}
	outline := normalizeOutline(parsed, params.NumQuestions, topics)

	log.Printf("phase 1 complete: outline for %d questions, pinning model %s", len(outline), model)

	questions := make([]Question, 0, len(outline))
	for i, entry := range outline {
		log.Printf("phase 2: generating Q%d on topic %q", entry.QuestionNumber, entry.Topic)
		questions = append(questions, b.buildQuestion(ctx, req.CourseName, entry, params, model))
		if i < len(outline)-1 {
			sleep(ctx, b.Pacing)
		}
	}

	return &Paper{
		Questions: questions,
		Info:      Info{Duration: params.Duration, NumQuestions: params.NumQuestions},
		ModelUsed: model,
	}, nil
}

// normalizeOutline coerces whatever phase 1 returned into exactly n
// entries: a lone object becomes a one-element outline, extras are cut,
// missing entries are synthesized by cycling through the topic list.
func normalizeOutline(v any, n int, topics []string) []OutlineEntry {
	arr, ok := v.([]any)
	if !ok {
		arr = []any{v}
	}
	if len(arr) > n {
		arr = arr[:n]
	}

	out := make([]OutlineEntry, 0, n)
	for i, raw := range arr {
		e := OutlineEntry{QuestionNumber: i + 1, Topic: topics[i%len(topics)]}
		if m, ok := raw.(map[string]any); ok {
			if f, ok := m["questionNumber"].(float64); ok && int(f) > 0 {
				e.QuestionNumber = int(f)
			}
			if s, ok := m["topic"].(string); ok && strings.TrimSpace(s) != "" {
				e.Topic = strings.TrimSpace(s)
			}
		}
		out = append(out, e)
	}
	for i := len(out); i < n; i++ {
		out = append(out, OutlineEntry{QuestionNumber: i + 1, Topic: topics[i%len(topics)]})
	}
	return out
}

// buildQuestion generates one question on the pinned model, retrying per
// the policy and degrading to the deterministic fallback on exhaustion.
func (b *Builder) buildQuestion(ctx context.Context, courseName string, entry OutlineEntry, params Params, pinned string) Question {
	prompt := ContentPrompt(courseName, entry.Topic, entry.QuestionNumber, params.MarksAB, params.MarksCD)

	var q Question
	err := b.Retry.Do(ctx, func() error {
		text, _, err := b.Invoker.Generate(ctx, prompt, contentConfig, pinned)
		if err != nil {
			return err
		}
		parsed, err := util.ParseLoose(text)
		if err != nil {
			return err
		}

		obj, ok := parsed.(map[string]any)
		if !ok {
			return fmt.Errorf("Q%d: invalid question structure", entry.QuestionNumber)
		}
		if _, ok := obj["parts"]; !ok {
			return fmt.Errorf("Q%d: missing 'parts' in question data", entry.QuestionNumber)
		}

		raw, _ := json.Marshal(obj)
		var decoded Question
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return fmt.Errorf("Q%d: %w", entry.QuestionNumber, err)
		}
		// The model is free to hallucinate a number; the outline wins.
		decoded.QuestionNumber = entry.QuestionNumber
		q = decoded
		return nil
	})
	if err != nil {
		log.Printf("Q%d: all attempts failed (%v), using fallback question", entry.QuestionNumber, err)
		return FallbackQuestion(entry, params)
	}

	log.Printf("Q%d generated successfully", entry.QuestionNumber)
	return q
}

// FallbackQuestion is the deterministic substitute used when all retries
// for a question are exhausted. It keeps the paper well-formed.
func FallbackQuestion(entry OutlineEntry, params Params) Question {
	return Question{
		QuestionNumber: entry.QuestionNumber,
		Parts: []Part{
			{Label: "a", Text: "Define " + entry.Topic, Marks: params.MarksAB},
			{Label: "b", Text: "Explain the key concepts of " + entry.Topic, Marks: params.MarksAB},
			{
				Label:  "c",
				Text:   "Apply " + entry.Topic + " in a real-world scenario",
				Marks:  params.MarksCD,
				HasOR:  true,
				ORText: "Analyze the benefits of " + entry.Topic,
			},
		},
	}
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
