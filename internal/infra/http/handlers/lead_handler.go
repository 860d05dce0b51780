package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vruddhi2107/on2cookXUP/internal/auth"
	"github.com/vruddhi2107/on2cookXUP/internal/entity"
	"github.com/vruddhi2107/on2cookXUP/internal/usecase"
)

// LeadHandler serves the gated grid: filtered views over the merged
// in-memory collection. All filtering is client-side predicates, never
// pushed down to the store.
type LeadHandler struct {
	Pipeline *usecase.Pipeline
	Gate     *auth.Gate
}

func NewLeadHandler(pipeline *usecase.Pipeline, gate *auth.Gate) *LeadHandler {
	return &LeadHandler{Pipeline: pipeline, Gate: gate}
}

type leadGridResponse struct {
	Leads   []usecase.MergedLead  `json:"leads"`
	Count   int                   `json:"count"`
	Options usecase.FilterOptions `json:"options"`
}

// HandleList returns the grid for one allocation view. The alloc
// filter doubles as the identity the access gate checks: an empty
// alloc is the full-team view and needs the master unlock.
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	allocF := q.Get("alloc")

	if !h.Gate.Session().IsUnlocked(allocF) {
		writeJSON(w, http.StatusForbidden, errorResponse{
			Code:    "VIEW_LOCKED",
			Message: "Unlock this view first",
		})
		return
	}

	filtered := h.Pipeline.Filter(usecase.FilterInput{
		Search:   q.Get("search"),
		City:     q.Get("city"),
		Alloc:    allocF,
		Platform: q.Get("platform"),
		Status:   q.Get("status"),
	})

	writeJSON(w, http.StatusOK, leadGridResponse{
		Leads:   filtered,
		Count:   len(filtered),
		Options: h.Pipeline.Options(),
	})
}

// HandleGet returns one merged lead profile plus the interview
// catalog the scoring form renders from.
func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")

	lead, ok := h.Pipeline.Lead(leadID)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Code:    "LEAD_NOT_FOUND",
			Message: "no lead in roster with id " + leadID,
		})
		return
	}

	if !h.Gate.Session().IsUnlocked(lead.Assignee()) {
		writeJSON(w, http.StatusForbidden, errorResponse{
			Code:    "VIEW_LOCKED",
			Message: "Unlock this view first",
		})
		return
	}

	row := usecase.MergedLead{Lead: lead, Status: entity.StatusOpen}
	if card, held := h.Pipeline.Card(leadID); held {
		row.Scores = card.Scores
		row.Flags = card.Flags
		row.Notes = card.Notes
		row.Total = card.Total
		row.FlagCount = card.FlagCount
		row.Status = card.Status
		row.Scored = len(card.Scores) > 0
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lead":      row,
		"sections":  entity.Sections(),
		"red_flags": entity.RedFlags(),
	})
}

// HandleSync reloads roster and overlay from the store. Any page
// failure aborts the refresh and the old collection stays visible.
func (h *LeadHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	if err := h.Pipeline.LoadAll(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(h.Pipeline.Snapshot()),
	})
}
