package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/vruddhi2107/on2cookXUP/internal/infra/http/middleware"
	"github.com/vruddhi2107/on2cookXUP/internal/usecase"
)

type ImportHandler struct {
	ImportUC    *usecase.ImportLeadsUseCase
	rateLimiter *RateLimiter
}

func NewImportHandler(importUC *usecase.ImportLeadsUseCase) *ImportHandler {
	return &ImportHandler{
		ImportUC:    importUC,
		rateLimiter: NewRateLimiter(5, time.Minute), // imports are heavy; 5/min per IP
	}
}

type importRequest struct {
	Rows []usecase.ImportRow `json:"rows"`
}

// Handle ingests a sheet export. Rows with no derivable identifier are
// dropped silently — that is a filter, not an error.
func (h *ImportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid JSON"})
		return
	}

	out, err := h.ImportUC.Execute(r.Context(), req.Rows)
	if err != nil {
		writeError(w, err)
		return
	}

	log.Printf("📥 Import %s: %d received, %d imported, %d skipped",
		out.BatchID, out.Received, out.Imported, out.Skipped)
	middleware.RecordImport(out.Imported, out.Skipped)

	writeJSON(w, http.StatusOK, out)
}
