package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vruddhi2107/on2cookXUP/internal/entity"
)

func previewRequest(t *testing.T, h *ScoreHandler, body map[string]interface{}) (*httptest.ResponseRecorder, previewResponse) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/score/preview", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.HandlePreview(rec, req)

	var resp previewResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestPreviewFullScoring(t *testing.T) {
	h := NewScoreHandler(nil, entity.DefaultThresholds())

	rec, resp := previewRequest(t, h, map[string]interface{}{
		"scores": map[string]int{"motivation": 5, "ops": 5, "finance": 5, "mindset": 3},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.CanSave)
	assert.Equal(t, entity.StatusFastTrack, resp.Status)
	assert.Equal(t, "Fast Track", resp.Label)
	assert.Equal(t, 18, resp.Total)
	assert.Equal(t, 4, resp.Done)
	assert.Equal(t, 4, resp.Required)
}

func TestPreviewPartialScoringBlocksSave(t *testing.T) {
	h := NewScoreHandler(nil, entity.DefaultThresholds())

	_, resp := previewRequest(t, h, map[string]interface{}{
		"scores": map[string]int{"motivation": 5},
	})

	assert.False(t, resp.CanSave)
	assert.Equal(t, 1, resp.Done)
}

func TestPreviewDispositionPinsStatus(t *testing.T) {
	h := NewScoreHandler(nil, entity.DefaultThresholds())

	_, resp := previewRequest(t, h, map[string]interface{}{
		"scores":      map[string]int{"motivation": 5, "ops": 5, "finance": 5, "mindset": 5},
		"disposition": "drop",
		"notes":       "asked to stop calling",
	})

	assert.True(t, resp.CanSave)
	// A perfect score still persists as drop while the disposition holds.
	assert.Equal(t, "drop", resp.Status)
	assert.Equal(t, 20, resp.Total)
}

func TestPreviewDropWithoutNotes(t *testing.T) {
	h := NewScoreHandler(nil, entity.DefaultThresholds())

	_, resp := previewRequest(t, h, map[string]interface{}{
		"disposition": "drop",
	})

	assert.False(t, resp.CanSave)
	assert.Equal(t, "drop", resp.Status)
}

func TestPreviewFlagForcesAutoReject(t *testing.T) {
	h := NewScoreHandler(nil, entity.DefaultThresholds())

	_, resp := previewRequest(t, h, map[string]interface{}{
		"scores": map[string]int{"motivation": 5, "ops": 5, "finance": 5, "mindset": 5},
		"flags":  map[string]bool{"1": true},
	})

	assert.Equal(t, entity.StatusAutoReject, resp.Status)
	assert.Equal(t, 1, resp.FlagCount)
}

func TestPreviewRejectsInvalidJSON(t *testing.T) {
	h := NewScoreHandler(nil, entity.DefaultThresholds())

	req := httptest.NewRequest(http.MethodPost, "/api/score/preview", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.HandlePreview(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
