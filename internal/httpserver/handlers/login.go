package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/smash-proyect/bff/internal/domain"
	"github.com/smash-proyect/bff/internal/httpserver/deps"
	"github.com/smash-proyect/bff/internal/logger"
)

// Login exchanges the posted credentials for a backend token and stores it
// in the session cookie. The token itself is never echoed in the body.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readJSONBody(w, r, d)
		if !ok {
			return
		}

		reqID := middleware.GetReqID(r.Context())
		out, err := d.Exchange.Login(r.Context(), body, reqID)
		if err != nil {
			d.Logger.Error("login exchange failed",
				logger.String("kind", string(domain.KindOf(err))),
				logger.String("request_id", reqID),
				logger.Error(err))
			writeError(w, d, http.StatusInternalServerError, ErrTagLoginError)
			return
		}

		if out.Token == "" {
			writeRaw(w, d, out.Status, out.Body)
			return
		}

		d.Cookie.Issue(w, out.Token)
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, d, http.StatusOK, okResponse{OK: true})
	}
}

// Logout drops the session cookie. The backend token is not revoked.
func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Cookie.Clear(w)
		writeJSON(w, d, http.StatusOK, okResponse{OK: true})
	}
}
