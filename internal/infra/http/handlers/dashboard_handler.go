package handlers

import (
	"net/http"

	"github.com/vruddhi2107/on2cookXUP/internal/analytics"
	"github.com/vruddhi2107/on2cookXUP/internal/usecase"
)

// DashboardHandler renders the analytics payload. Every request is a
// full recomputation over the merged snapshot — no caching, no
// incremental updates.
type DashboardHandler struct {
	Pipeline *usecase.Pipeline
}

func NewDashboardHandler(pipeline *usecase.Pipeline) *DashboardHandler {
	return &DashboardHandler{Pipeline: pipeline}
}

func (h *DashboardHandler) Handle(w http.ResponseWriter, r *http.Request) {
	rows := h.Pipeline.Snapshot()
	dash := analytics.BuildDashboard(rows)

	// Optional re-sort of the team table.
	if col := r.URL.Query().Get("sort"); col != "" {
		asc := r.URL.Query().Get("dir") == "asc"
		analytics.SortTeamRows(dash.Team, col, asc)
	}

	writeJSON(w, http.StatusOK, dash)
}
