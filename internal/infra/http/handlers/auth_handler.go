package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vruddhi2107/on2cookXUP/internal/auth"
	"github.com/vruddhi2107/on2cookXUP/internal/infra/http/middleware"
)

// AuthHandler maps the gate's challenge/submit/cancel flow onto JSON
// endpoints. The session lives in process memory — a restart locks
// everything again, same as a page reload did.
type AuthHandler struct {
	Gate *auth.Gate
}

func NewAuthHandler(gate *auth.Gate) *AuthHandler {
	return &AuthHandler{Gate: gate}
}

type requestAccessRequest struct {
	Identity string `json:"identity"`
}

type authStateResponse struct {
	Granted   bool   `json:"granted"`
	Pending   bool   `json:"pending"`
	Identity  string `json:"identity,omitempty"`
	Selection string `json:"selection"`
	Selected  bool   `json:"selected"`
	Message   string `json:"message,omitempty"`
}

// HandleRequest opens (or short-circuits) a challenge for an identity.
func (h *AuthHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	var req requestAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid JSON"})
		return
	}

	granted := false
	h.Gate.RequestAccess(req.Identity, func() { granted = true }, nil)

	resp := h.state()
	resp.Granted = granted
	resp.Identity = req.Identity
	writeJSON(w, http.StatusOK, resp)
}

type unlockRequest struct {
	Secret string `json:"secret"`
}

// HandleUnlock answers the pending challenge. A wrong secret keeps the
// challenge open and costs nothing — retries are unlimited.
func (h *AuthHandler) HandleUnlock(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid JSON"})
		return
	}

	identity, pending := h.Gate.Session().Pending()
	if !pending {
		writeJSON(w, http.StatusConflict, errorResponse{Message: "No challenge is pending"})
		return
	}

	ok := h.Gate.Submit(req.Secret)
	middleware.RecordUnlockAttempt(ok)
	if !ok {
		resp := h.state()
		resp.Identity = identity
		resp.Message = "Incorrect password. Try again."
		writeJSON(w, http.StatusUnauthorized, resp)
		return
	}

	resp := h.state()
	resp.Granted = true
	resp.Identity = identity
	writeJSON(w, http.StatusOK, resp)
}

// HandleCancel abandons the challenge; the response carries the
// selection the UI should revert to.
func (h *AuthHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	h.Gate.Cancel()
	writeJSON(w, http.StatusOK, h.state())
}

// HandleSession reports the current unlock state.
func (h *AuthHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.state())
}

func (h *AuthHandler) state() authStateResponse {
	s := h.Gate.Session()
	selection, selected := s.Selection()
	_, pending := s.Pending()
	return authStateResponse{
		Pending:   pending,
		Selection: selection,
		Selected:  selected,
	}
}
