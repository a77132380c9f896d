package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/smash-proyect/bff/internal/httpserver/deps"
	"github.com/smash-proyect/bff/internal/httpserver/handlers"
)

func init() {
	Register(registerHealth)
	RegisterAPI(registerHealthAll)
}

func registerHealth(r chi.Router, d deps.Deps) {
	r.Get("/health", handlers.Health(d))
}

func registerHealthAll(r chi.Router, d deps.Deps) {
	r.Get("/health-all", handlers.HealthAll(d))
	r.Get("/health-last", handlers.HealthLast(d))
}
