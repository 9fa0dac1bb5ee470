package llm

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Gemini generates text through the Google Gemini API. A client is opened
// per call; the SDK keeps no useful state between requests and this keeps
// the engine a plain value constructed from config.
type Gemini struct {
	APIKey string
}

func NewGemini(apiKey string) *Gemini {
	return &Gemini{APIKey: strings.TrimSpace(apiKey)}
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) GenerateText(ctx context.Context, model, prompt string, cfg GenConfig) (string, error) {
	cl, err := genai.NewClient(ctx, option.WithAPIKey(g.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(strings.TrimSpace(model))
	m.SetTemperature(cfg.Temperature)
	if cfg.MaxOutputTokens > 0 {
		m.SetMaxOutputTokens(cfg.MaxOutputTokens)
	}
	if cfg.CandidateCount > 0 {
		m.SetCandidateCount(cfg.CandidateCount)
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return firstText(resp), nil
}

// ListModels returns the identifiers of models that support content
// generation, without the "models/" prefix.
func (g *Gemini) ListModels(ctx context.Context) ([]string, error) {
	cl, err := genai.NewClient(ctx, option.WithAPIKey(g.APIKey))
	if err != nil {
		return nil, err
	}
	defer cl.Close()

	var names []string
	it := cl.ListModels(ctx)
	for {
		m, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		if !supportsGeneration(m) {
			continue
		}
		names = append(names, strings.TrimPrefix(m.Name, "models/"))
	}
	return names, nil
}

func supportsGeneration(m *genai.ModelInfo) bool {
	for _, method := range m.SupportedGenerationMethods {
		if method == "generateContent" {
			return true
		}
	}
	return false
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}
