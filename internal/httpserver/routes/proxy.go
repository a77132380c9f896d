package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/smash-proyect/bff/internal/httpserver/deps"
	"github.com/smash-proyect/bff/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerProxy) }

func registerProxy(r chi.Router, d deps.Deps) {
	r.Post("/get-event-id", handlers.Forward(d, d.EventLookup))
	r.Post("/reports", handlers.Forward(d, d.Reports))
}
