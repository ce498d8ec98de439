package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"campaignhub/internal/handlers"
)

func RegisterApplicationRoutes(router chi.Router, deps Dependencies, v *validator.Validate, auth authMiddleware) {
	h := handlers.NewApplicationHandler(deps.Applications, v, deps.Logger)

	router.Route("/applications", func(r chi.Router) {
		r.Use(auth)
		r.Post("/", h.Submit)
		r.Get("/me", h.ListMine)
	})
}
