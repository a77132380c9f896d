package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/smash-proyect/bff/internal/httpserver/deps"
	"github.com/smash-proyect/bff/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	r.Post("/login", handlers.Login(d))
	r.Post("/logout", handlers.Logout(d))
}
