package handlers

import (
	"net/http"

	"github.com/smash-proyect/bff/internal/domain"
	"github.com/smash-proyect/bff/internal/httpserver/deps"
)

type healthAllResponse struct {
	Services domain.AggregateHealthReport `json:"services"`
}

// HealthAll checks every configured service concurrently. Individual
// failures are reported per service; the endpoint itself always answers 200.
func HealthAll(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checkedAt := d.Now()
		report := d.Aggregator.CheckAll(r.Context(), d.Targets)
		if d.Snapshots != nil {
			d.Snapshots.Record(r.Context(), report, checkedAt)
		}

		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, d, http.StatusOK, healthAllResponse{Services: report})
	}
}

// HealthLast returns the most recently recorded report without calling
// any service.
func HealthLast(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Snapshots == nil {
			writeError(w, d, http.StatusNotFound, ErrTagNoSnapshot)
			return
		}
		snap, ok := d.Snapshots.Last()
		if !ok {
			writeError(w, d, http.StatusNotFound, ErrTagNoSnapshot)
			return
		}
		writeJSON(w, d, http.StatusOK, snap)
	}
}
