package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vruddhi2107/on2cookXUP/internal/usecase"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps the engine's error taxonomy onto HTTP. Validation
// and domain failures are the caller's problem (422); transport
// failures bubble with the store's message intact (502).
func writeError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *usecase.DomainError:
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Code: e.Code, Message: e.Message})
	case *usecase.TechnicalError:
		writeJSON(w, http.StatusBadGateway, errorResponse{Code: e.Code, Message: e.Message})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: err.Error()})
	}
}
