package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smash-proyect/bff/internal/httpserver/deps"
	"github.com/smash-proyect/bff/internal/httpserver/mw"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type entry struct {
	reg Registrar
	mws []Middleware
}

var (
	registry    []entry
	apiRegistry []entry
)

// Register a root-level registrar with optional per-route middlewares.
func Register(reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{reg: reg, mws: mws})
}

// RegisterAPI registers routes mounted under /api, behind the rate limiter.
func RegisterAPI(reg Registrar, mws ...Middleware) {
	apiRegistry = append(apiRegistry, entry{reg: reg, mws: mws})
}

// Called once from server.New()
func RegisterAll(r chi.Router, d deps.Deps) {
	mount(r, registry, d)
	r.Route("/api", func(api chi.Router) {
		api.Use(mw.RateLimit(d.RateLimit, d.Logger))
		mount(api, apiRegistry, d)
	})
}

func mount(r chi.Router, entries []entry, d deps.Deps) {
	for _, e := range entries {
		if len(e.mws) == 0 {
			e.reg(r, d)
			continue
		}
		e.reg(r.With(e.mws...), d)
	}
}
