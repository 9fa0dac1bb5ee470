package handle

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/jiyanshuj/PaperVista/api/internal/exam"
	"github.com/jiyanshuj/PaperVista/api/internal/store"
)

// GenerateResponse is the success envelope of /api/generate-questions.
type GenerateResponse struct {
	Success   bool            `json:"success"`
	Questions []exam.Question `json:"questions"`
	Message   string          `json:"message"`
	ExamInfo  exam.Info       `json:"examInfo"`
	ModelUsed string          `json:"modelUsed"`
}

func (h *Handle) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	var req exam.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}

	log.Printf("new request: %s for %s", req.ExamType, req.CourseName)

	paper, err := h.Builder.Build(r.Context(), req)
	if err != nil {
		log.Printf("generation failed: %v", err)
		code, detail := statusFor(err)
		writeError(w, code, detail)
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{
		Success:   true,
		Questions: paper.Questions,
		Message:   "Questions generated successfully",
		ExamInfo:  paper.Info,
		ModelUsed: paper.ModelUsed,
	})

	// archive only after the response is on the wire, so a slow or down
	// database cannot hold up a request the pipeline already completed
	if h.Repo != nil {
		h.archive(req, paper)
	}
}

// archive persists the paper best-effort; a storage hiccup must never
// fail a request the pipeline already completed.
func (h *Handle) archive(req exam.Request, paper *exam.Paper) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := h.Repo.Insert(ctx, store.ExamRow{
		CourseName:   req.CourseName,
		ExamType:     req.ExamType,
		ModelUsed:    paper.ModelUsed,
		Duration:     paper.Info.Duration,
		NumQuestions: paper.Info.NumQuestions,
		Paper:        *paper,
	})
	if err != nil {
		log.Printf("archive: %v", err)
	}
}
