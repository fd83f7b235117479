package handlers

import (
	"encoding/json"
	"net/http"

	"projectTracker/internal/logger"
)

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")
	healthCheck(w)
}

func responseWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func responseWithError(w http.ResponseWriter, code int, message string) {
	responseWithJSON(w, code, map[string]any{"error": message})
}

func healthCheck(w http.ResponseWriter) {
	responseWithJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
