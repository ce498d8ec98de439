package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"campaignhub/internal/handlers"
)

func RegisterUserRoutes(router chi.Router, deps Dependencies, v *validator.Validate, auth authMiddleware) {
	h := handlers.NewUserHandler(deps.Users, v, deps.Logger)

	router.Route("/users", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.With(auth).Get("/me", h.Me)
	})
}
