package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/smash-proyect/bff/internal/auth"
	"github.com/smash-proyect/bff/internal/domain"
	"github.com/smash-proyect/bff/internal/httpserver/deps"
	"github.com/smash-proyect/bff/internal/logger"
	"github.com/smash-proyect/bff/internal/proxy"
)

// Forward relays the request body to f and the backend answer back to the
// client. Authenticated forwarders turn the session cookie into a bearer
// header. Any failure to obtain a JSON answer is a plain 502.
func Forward(d deps.Deps, f *proxy.Forwarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readJSONBody(w, r, d)
		if !ok {
			return
		}

		var token string
		if f.Authenticated {
			token = auth.TokenFromRequest(r)
		}

		reqID := middleware.GetReqID(r.Context())
		resp, err := f.Forward(r.Context(), body, token, reqID)
		if err != nil {
			d.Logger.Error("proxy request failed",
				logger.String("service", f.Service),
				logger.String("kind", string(domain.KindOf(err))),
				logger.String("request_id", reqID),
				logger.Error(err))
			writeError(w, d, http.StatusBadGateway, ErrTagBadGateway)
			return
		}

		writeRaw(w, d, resp.Status, resp.Body)
	}
}
