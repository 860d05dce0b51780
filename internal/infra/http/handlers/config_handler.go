package handlers

import (
	"net/http"
)

// ConfigHandler hands the SPA its store coordinates. The anon key is a
// public credential, safe to expose to the browser.
type ConfigHandler struct {
	SupabaseURL     string
	SupabaseAnonKey string
}

func NewConfigHandler(supabaseURL, supabaseAnonKey string) *ConfigHandler {
	return &ConfigHandler{SupabaseURL: supabaseURL, SupabaseAnonKey: supabaseAnonKey}
}

type configResponse struct {
	SupabaseURL     string `json:"supabaseUrl"`
	SupabaseAnonKey string `json:"supabaseAnonKey"`
}

func (h *ConfigHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.SupabaseURL == "" || h.SupabaseAnonKey == "" {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Code:    "CONFIG_MISSING",
			Message: "store coordinates are not configured",
		})
		return
	}
	writeJSON(w, http.StatusOK, configResponse{
		SupabaseURL:     h.SupabaseURL,
		SupabaseAnonKey: h.SupabaseAnonKey,
	})
}
