package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vruddhi2107/on2cookXUP/internal/entity"
	"github.com/vruddhi2107/on2cookXUP/internal/infra/http/middleware"
	"github.com/vruddhi2107/on2cookXUP/internal/usecase"
)

type ScoreHandler struct {
	SaveUC     *usecase.SaveScoreUseCase
	Thresholds entity.Thresholds
}

func NewScoreHandler(saveUC *usecase.SaveScoreUseCase, thresholds entity.Thresholds) *ScoreHandler {
	return &ScoreHandler{SaveUC: saveUC, Thresholds: thresholds}
}

type saveScoreRequest struct {
	Scores      map[string]int  `json:"scores"`
	Flags       map[string]bool `json:"flags"`
	Notes       string          `json:"notes"`
	Disposition string          `json:"disposition"`
}

// HandleSave persists one scoring decision. A refused save (missing
// notes, incomplete sections) never reaches the store.
func (h *ScoreHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")

	var req saveScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid JSON"})
		return
	}

	out, err := h.SaveUC.Execute(r.Context(), usecase.SaveScoreInput{
		LeadID:      leadID,
		Scores:      req.Scores,
		Flags:       req.Flags,
		Notes:       req.Notes,
		Disposition: entity.Disposition(req.Disposition),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordScoreSaved(out.Status)
	writeJSON(w, http.StatusOK, out)
}

type previewResponse struct {
	CanSave   bool   `json:"can_save"`
	Status    string `json:"status"`
	Label     string `json:"label"`
	Total     int    `json:"total"`
	FlagCount int    `json:"flag_count"`
	Done      int    `json:"sections_done"`
	Required  int    `json:"sections_required"`
}

// HandlePreview mirrors the save button: it reports, for the current
// form state, whether a save would be admitted and what status it
// would persist. Pure computation, no store calls.
func (h *ScoreHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	var req saveScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid JSON"})
		return
	}

	disp := entity.Disposition(req.Disposition)
	total := entity.CalcTotal(req.Scores)
	flagCount := entity.CalcFlagCount(req.Flags)
	status := disp.PersistedStatus(h.Thresholds, total, flagCount)

	writeJSON(w, http.StatusOK, previewResponse{
		CanSave:   disp.CanSave(req.Scores, req.Notes),
		Status:    status,
		Label:     entity.StatusLabel(status),
		Total:     total,
		FlagCount: flagCount,
		Done:      entity.ScoredSections(req.Scores),
		Required:  len(entity.Sections()),
	})
}
