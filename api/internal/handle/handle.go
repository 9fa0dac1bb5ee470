package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jiyanshuj/PaperVista/api/internal/exam"
	"github.com/jiyanshuj/PaperVista/api/internal/llm"
	"github.com/jiyanshuj/PaperVista/api/internal/store"
)

// Handle carries the handlers' dependencies. Repo is nil when no
// database is configured.
type Handle struct {
	Engine  llm.Engine
	Builder *exam.Builder
	Repo    *store.ExamRepo
}

func New(engine llm.Engine, builder *exam.Builder, repo *store.ExamRepo) *Handle {
	return &Handle{
		Engine:  engine,
		Builder: builder,
		Repo:    repo,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}

// statusFor maps a pipeline failure onto the externally visible error
// categories. Upstream errors carry no stable codes across every failure
// mode, so the last resort is substring inspection.
func statusFor(err error) (int, string) {
	var te *llm.TimeoutError
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &te) {
		return http.StatusGatewayTimeout, "Request timed out. Please try again."
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "429") || strings.Contains(lower, "quota"):
		return http.StatusTooManyRequests, "API quota exceeded. Please try again later."
	case strings.Contains(msg, "API key"):
		return http.StatusUnauthorized, "Invalid API key configuration"
	default:
		return http.StatusInternalServerError, "Failed to generate questions: " + msg
	}
}
