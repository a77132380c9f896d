package handlers

import (
	"net/http"

	"github.com/smash-proyect/bff/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready   bool `json:"ready"`
	Targets int  `json:"targets"`
}

// Readyz reports whether the gateway can serve traffic: it needs at least
// one health target and a wired auth exchange.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ready := len(d.Targets) > 0 && d.Exchange != nil
		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, d, status, readyzResponse{Ready: ready, Targets: len(d.Targets)})
	}
}
