package httpserver

import (
	"log"
	"net/http"

	"github.com/rs/cors"

	"github.com/jiyanshuj/PaperVista/api/internal/handle"
)

// NewMux wires the service routes.
func NewMux(h *handle.Handle) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.Root)
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/api/generate-questions", h.Generate)
	mux.HandleFunc("/api/recent-papers", h.RecentPapers)
	return mux
}

// Start serves the API on addr with the given CORS origin allowlist.
func Start(addr string, h *handle.Handle, origins []string) error {
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	log.Printf("papervista listening on %s", addr)
	return http.ListenAndServe(addr, c.Handler(NewMux(h)))
}
