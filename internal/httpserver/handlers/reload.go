package handlers

import (
	"net/http"

	"github.com/smash-proyect/bff/internal/httpserver/deps"
	"github.com/smash-proyect/bff/internal/logger"
)

type reloadResponse struct {
	Triggered bool   `json:"triggered"`
	Message   string `json:"message"`
}

// Reload asks the background poller for an immediate health poll.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.RefreshTrigger <- struct{}{}:
			d.Logger.Info("manual health poll triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, d, http.StatusAccepted, reloadResponse{
				Triggered: true,
				Message:   "health poll triggered",
			})
		default:
			d.Logger.Warn("health poll already pending",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, d, http.StatusTooManyRequests, reloadResponse{
				Triggered: false,
				Message:   "health poll already pending, please wait",
			})
		}
	}
}
