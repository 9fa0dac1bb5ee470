package handle

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jiyanshuj/PaperVista/api/internal/exam"
)

const recentLimit = 20

// PaperSummary is one archive listing entry. The full question text stays
// in the archive; listings only carry the metadata.
type PaperSummary struct {
	CreatedAt  time.Time `json:"createdAt"`
	CourseName string    `json:"courseName"`
	ExamType   string    `json:"examType"`
	ModelUsed  string    `json:"modelUsed"`
	ExamInfo   exam.Info `json:"examInfo"`
}

// RecentPapers lists the newest archived papers.
func (h *Handle) RecentPapers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	if h.Repo == nil {
		writeError(w, http.StatusNotFound, "Archive is not configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Repo.Recent(ctx, recentLimit)
	if err != nil {
		log.Printf("recent papers: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to read the archive")
		return
	}

	papers := make([]PaperSummary, 0, len(rows))
	for _, row := range rows {
		papers = append(papers, PaperSummary{
			CreatedAt:  row.CreatedAt,
			CourseName: row.CourseName,
			ExamType:   row.ExamType,
			ModelUsed:  row.ModelUsed,
			ExamInfo:   exam.Info{Duration: row.Duration, NumQuestions: row.NumQuestions},
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"papers": papers})
}
