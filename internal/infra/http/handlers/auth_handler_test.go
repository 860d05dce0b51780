package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vruddhi2107/on2cookXUP/internal/auth"
)

func newAuthHandler() *AuthHandler {
	return NewAuthHandler(auth.NewGate(map[string]string{
		auth.MasterIdentity: "BlueSky2026",
		"Anil":              "GreenLeaf123",
	}))
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) (*httptest.ResponseRecorder, authStateResponse) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	handler(rec, req)

	var resp authStateResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func TestAuthChallengeAndUnlock(t *testing.T) {
	h := newAuthHandler()

	rec, resp := postJSON(t, h.HandleRequest, "/api/auth/request", requestAccessRequest{Identity: "Anil"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, resp.Granted)
	assert.True(t, resp.Pending)

	rec, resp = postJSON(t, h.HandleUnlock, "/api/auth/unlock", unlockRequest{Secret: "GreenLeaf123"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Granted)
	assert.Equal(t, "Anil", resp.Identity)
	assert.True(t, resp.Selected)
	assert.Equal(t, "Anil", resp.Selection)
}

func TestAuthWrongSecretKeepsChallenge(t *testing.T) {
	h := newAuthHandler()
	postJSON(t, h.HandleRequest, "/api/auth/request", requestAccessRequest{Identity: "Anil"})

	rec, resp := postJSON(t, h.HandleUnlock, "/api/auth/unlock", unlockRequest{Secret: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Incorrect password. Try again.", resp.Message)
	assert.True(t, resp.Pending, "the challenge stays open for a retry")

	rec, _ = postJSON(t, h.HandleUnlock, "/api/auth/unlock", unlockRequest{Secret: "GreenLeaf123"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthUnlockWithoutChallenge(t *testing.T) {
	h := newAuthHandler()

	rec, _ := postJSON(t, h.HandleUnlock, "/api/auth/unlock", unlockRequest{Secret: "GreenLeaf123"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthCancelRevertsSelection(t *testing.T) {
	h := newAuthHandler()
	postJSON(t, h.HandleRequest, "/api/auth/request", requestAccessRequest{Identity: "Anil"})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/cancel", nil)
	rec := httptest.NewRecorder()
	h.HandleCancel(rec, req)

	var resp authStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Pending)
	assert.False(t, resp.Selected, "no prior success: revert to none selected")
}

func TestAuthGrantedIdentitySkipsChallenge(t *testing.T) {
	h := newAuthHandler()
	postJSON(t, h.HandleRequest, "/api/auth/request", requestAccessRequest{Identity: "Anil"})
	postJSON(t, h.HandleUnlock, "/api/auth/unlock", unlockRequest{Secret: "GreenLeaf123"})

	// Re-selecting an unlocked identity grants without a new challenge.
	rec, resp := postJSON(t, h.HandleRequest, "/api/auth/request", requestAccessRequest{Identity: "Anil"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Granted)
	assert.False(t, resp.Pending)
}
