package handle

import (
	"context"
	"log"
	"net/http"
	"time"
)

func (h *Handle) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Exam Paper Generator API is running",
		"status":  "healthy",
	})
}

// Health reports service liveness and, best-effort, a few available
// model identifiers. A listing failure never fails the endpoint.
func (h *Handle) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	models, err := h.Engine.ListModels(ctx)
	if err != nil {
		log.Printf("could not list models: %v", err)
		models = nil
	}
	if len(models) > 5 {
		models = models[:5]
	}
	if models == nil {
		models = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "healthy",
		"api":              "operational",
		"available_models": models,
	})
}
