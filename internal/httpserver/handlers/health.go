package handlers

import (
	"net/http"

	"github.com/smash-proyect/bff/internal/httpserver/deps"
)

type statusResponse struct {
	Status string `json:"status"`
}

// Health is the gateway's own liveness check. It never calls downstream.
func Health(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, d, http.StatusOK, statusResponse{Status: "ok"})
	}
}
